package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/creativeprojects/go-selfupdate"
	"github.com/hashicorp/go-version"
	log "github.com/sirupsen/logrus"
)

// Check for update and update if one is available.
func Update(c *UpdateConfig) error {
	log.Println("Checking for update.")
	// Setup source.
	source, err := selfupdate.NewGitHubSource(selfupdate.GitHubConfig{})
	if err != nil {
		return err
	}

	// Get the path to ourself.
	exe, err := selfupdate.ExecutablePath()
	if err != nil {
		return fmt.Errorf("could not locate executable path: %s", err)
	}
	updateDir, cmd := filepath.Split(exe)
	oldSavePath := filepath.Join(updateDir, fmt.Sprintf(".%s.old", cmd))

	// Get updater with source and validator.
	updater, err := selfupdate.NewUpdater(selfupdate.Config{
		Source:      source,
		Validator:   &selfupdate.ChecksumValidator{UniqueFilename: "checksums.txt"},
		OldSavePath: oldSavePath,
	})
	if err != nil {
		return err
	}

	// Find the latest release.
	release, found, err := updater.DetectLatest(context.Background(), selfupdate.NewRepositorySlug(c.Owner, c.Repo))
	if err != nil {
		return err
	}
	if !found {
		log.Println("No updates available.")
		return nil
	}

	// Compare the versions.
	thisVersion, err := version.NewVersion(c.CurrentVersion)
	if err != nil {
		return err
	}
	latestVersion, err := version.NewVersion(release.Version())
	if err != nil {
		return err
	}

	// If an update isn't available, end.
	if !thisVersion.LessThan(latestVersion) {
		log.Println("No updates available.")
		return nil
	}
	log.Println("Updating to version:", release.Version())

	// Perform the update.
	err = updater.UpdateTo(context.Background(), release, exe)

	// If update failed, rollback.
	if err != nil {
		rerr := os.Rename(oldSavePath, exe)
		if rerr != nil {
			log.Println("Failed to rollback update:", rerr)
		}
		return err
	}

	// The update was successful, so we can remove the old binary.
	os.Remove(oldSavePath)

	log.Println("Updated.")
	return nil
}

// Check for updates, and apply.
func CheckForUpdate(c *UpdateConfig) {
	// Set update config local variables.
	c.CurrentVersion = serviceVersion
	err := Update(c)
	if err != nil {
		log.Println("Failure checking for update:", err)
	}
}

// Every 24 hours, check for updates. An applied update takes effect the
// next time the service starts.
func (a *App) RunUpdateLoop() {
	// If disabled, don't run loop.
	if a.UpdateConfig.Disabled {
		return
	}

	// Run update check every 24 hours.
	for {
		nextUpdate := time.Hour * 24
		nextUpdate += time.Duration(rand.Intn(18000)) * time.Second
		time.Sleep(nextUpdate)
		CheckForUpdate(a.UpdateConfig)
	}
}

package main

// Command to upgrade this binary.
type UpgradeCmd struct{}

func (s *UpgradeCmd) Run() (err error) {
	config := ReadConfig()
	CheckForUpdate(config.Update)
	return
}

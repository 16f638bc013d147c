package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"sightd/internal/di"
	"sightd/internal/store"
	"sightd/internal/structures"
)

const latestSnapshot = "latest"

func main() {
	flags := &structures.CliFlags{}
	var restore string

	pflag.StringVarP(&flags.ConfigPath, "config", "c", "config.yaml", "path to the YAML config file")
	pflag.BoolVarP(&flags.DebugMode, "debug", "d", false, "log to the console as well as to files")
	pflag.StringVar(&restore, "restore", "", "restore the document from a backup snapshot and exit (no value: newest snapshot)")
	pflag.Lookup("restore").NoOptDefVal = latestSnapshot
	pflag.Parse()

	if restore != "" {
		if err := restoreSnapshot(flags, restore); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	_, cleanup, err := di.InitApp(flags)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	cleanup()
}

func restoreSnapshot(flags *structures.CliFlags, name string) error {
	backups, cleanup, err := di.InitBackupManager(flags)
	if err != nil {
		return err
	}
	defer cleanup()

	if name == latestSnapshot {
		name = ""
	}
	restored, err := backups.Restore(name)
	if errors.Is(err, store.ErrNoBackups) {
		return fmt.Errorf("nothing to restore: %w", err)
	}
	if err != nil {
		return err
	}
	fmt.Printf("restored %s\n", restored)
	return nil
}

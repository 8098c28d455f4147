package database

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	AppDirName     = ".multi-city-planner"
	DBFileName     = "trips.db"
	FallbackDBPath = "data/" + DBFileName
)

// GetAppDir returns ~/.multi-city-planner without creating it
func GetAppDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, AppDirName), nil
}

// GetDefaultDBPath returns ~/.multi-city-planner/trips.db, or a path
// relative to the working directory when no home directory is known.
func GetDefaultDBPath() string {
	appDir, err := GetAppDir()
	if err != nil {
		return FallbackDBPath
	}
	return filepath.Join(appDir, DBFileName)
}

package config

import (
	"os"
)

// Storage backends.
const (
	StorageDynamoDB = "dynamodb"
	StorageMemory   = "memory"
)

type Config struct {
	Port            string
	GinMode         string
	LogLevel        string
	AWSRegion       string
	DynamoEndpoint  string
	UsersTable      string
	TasksTable      string
	WorkspacesTable string
	CognitoClientID string
	JWTSecret       string
	StorageBackend  string
}

func Load() *Config {
	return &Config{
		Port:            getEnv("PORT", "8080"),
		GinMode:         getEnv("GIN_MODE", "debug"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		AWSRegion:       getEnv("AWS_REGION", "eu-central-1"),
		DynamoEndpoint:  getEnv("DYNAMODB_ENDPOINT", ""),
		UsersTable:      getEnv("USERS_TABLE", "TaskMaster-Users"),
		TasksTable:      getEnv("TASKS_TABLE", "TaskMaster-Tasks"),
		WorkspacesTable: getEnv("WORKSPACES_TABLE", "TaskMaster-Workspaces"),
		CognitoClientID: getEnv("USER_POOL_CLIENT_ID", ""),
		JWTSecret:       getEnv("JWT_SECRET", "default-secret-key-change-me"),
		StorageBackend:  getEnv("STORAGE_BACKEND", StorageDynamoDB),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

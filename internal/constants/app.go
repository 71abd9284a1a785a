package constants

import "time"

// Application Information
const (
	AppName    = "Instrument Catalog"
	AppVersion = "1.0.0"
)

// Environment Types
const (
	EnvDevelopment = "development"
	EnvStaging     = "staging"
	EnvProduction  = "production"
	EnvTest        = "test"
)

// Default Application Settings
const (
	DefaultPort        = "8080"
	DefaultEnvironment = EnvDevelopment
	DefaultBaseURL     = "http://localhost:8080"
)

// Storage drivers
const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

// Cache Key Prefixes
const (
	CacheKeyPrefix     = "instruments:"
	CacheKeyListing    = CacheKeyPrefix + "listing:"
	CacheKeyGeneration = CacheKeyPrefix + "generation"
	DefaultCacheTTL    = 60 * time.Second
)

// Counter names
const (
	CounterInstruments = "instruments"
)

package constants

const (
	ConfigDir      = "/.ingenium"
	ConfigFile     = "cfg"
	ConfigFileType = "yaml"

	DataFile = "ingenium.db"

	EnvPrefix = "INGENIUM"
)

package cfg

type Cfg struct {
	// Storage configuration
	DBPath  string
	DataDir string

	// Application configuration
	Port         string
	ConfigFile   string
	ScheduleAt   string
	RunOnStartup bool
	WorkerCount  int
	FetchTimeout int

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}

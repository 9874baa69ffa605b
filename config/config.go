package config

import (
	"github.com/gotify/configor"
)

var Conf *Configuration

type Configuration struct {
	App struct {
		ListenAddr string `default:"" env:"APP_HOST"`
		Port       int    `default:"8080"  env:"APP_PORT"`
	}
	Database struct {
		Dir          string `default:"./data/talentflow" env:"DB_DIR"`
		InMemory     *bool  `default:"false" env:"DB_IN_MEMORY"`
		SnapshotFile string `default:"./data/talentflow-snapshot.json" env:"DB_SNAPSHOT_FILE"`
	}
	Seed struct {
		Jobs        int   `default:"25" env:"SEED_JOBS"`
		Candidates  int   `default:"1000" env:"SEED_CANDIDATES"`
		Assessments int   `default:"3" env:"SEED_ASSESSMENTS"`
		OnStart     *bool `default:"true" env:"SEED_ON_START"`
	}
	SimNet struct {
		Enabled       *bool   `default:"true" env:"SIMNET_ENABLED"`
		MinDelayMs    int     `default:"200" env:"SIMNET_MIN_DELAY_MS"`
		MaxDelayMs    int     `default:"1200" env:"SIMNET_MAX_DELAY_MS"`
		ReadFailRate  float64 `default:"0.05" env:"SIMNET_READ_FAIL_RATE"`
		WriteFailRate float64 `default:"0.08" env:"SIMNET_WRITE_FAIL_RATE"`
	}
}

func configFiles() []string {
	return []string{"config.yml"}
}

func InitConfig() {
	if Conf != nil {
		return
	}
	conf := new(Configuration)
	err := configor.New(&configor.Config{}).Load(conf, configFiles()...)
	if err != nil {
		panic(err)
	}
	Conf = conf
}

package initializers

import (
	"talentflow-backend/config"
	"talentflow-backend/db"
)

func InitDBConnection() {
	err := db.Connect(config.Conf.Database.Dir, *config.Conf.Database.InMemory, config.Conf.Database.SnapshotFile)
	if err != nil {
		panic(err.Error())
	}
}

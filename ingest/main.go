// Command ingest parses a raw motor-vehicle-collisions export and upserts
// the validated canonical records into the mongodb dataset the serving
// process loads from.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/safestreets-inc/routesafety-api/score"
	"github.com/safestreets-inc/routesafety-api/store"
)

const logPrefix = "ingest"

func init() {
	viper.AutomaticEnv()
	viper.SetEnvPrefix("routesafety")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.SetDefault("safety.weight.fatality", score.DefaultFatalityWeight)
}

func initLog() {
	logLevel, err := log.ParseLevel(viper.GetString("log.level"))
	if err != nil {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(logLevel)
	}

	log.SetOutput(os.Stdout)

	log.SetFormatter(&prefixed.TextFormatter{
		ForceFormatting: true,
		FullTimestamp:   true,
	})
}

func loadConfig(file string) {
	viper.SetConfigType("yaml")
	if file != "" {
		viper.SetConfigFile(file)
	}

	viper.AddConfigPath("/.config/")
	viper.AddConfigPath(".")
	if err := viper.ReadInConfig(); err != nil {
		fmt.Println("No config file. Read config from env.")
		viper.AllowEmptyEnv(false)
	}
}

func main() {
	var configFile string
	var datasetFile string

	flag.StringVar(&configFile, "c", "./config.yaml", "[optional] path of configuration file")
	flag.StringVar(&datasetFile, "f", "", "path of the collision export to ingest")
	flag.Parse()

	loadConfig(configFile)
	initLog()

	if datasetFile == "" {
		datasetFile = viper.GetString("dataset.file")
	}
	if datasetFile == "" {
		log.Panic("no collision export given, use -f or dataset.file")
	}

	records, err := store.LoadCSVFile(datasetFile, viper.GetFloat64("safety.weight.fatality"))
	if err != nil {
		log.Panicf("parse collision export %s: %s", datasetFile, err)
	}
	if len(records) == 0 {
		log.Panicf("collision export %s produced no usable records", datasetFile)
	}

	opts := options.Client().ApplyURI(viper.GetString("mongo.conn"))
	mongoClient, err := mongo.NewClient(opts)
	if nil != err {
		log.Panicf("create mongo client with error: %s", err)
	}
	if err := mongoClient.Connect(context.Background()); nil != err {
		log.Panicf("connect mongo database with error: %s", err)
	}

	datasetStore := store.NewMongoDatasetStore(mongoClient, viper.GetString("mongo.database"))
	defer datasetStore.Close()

	if err := datasetStore.ReplaceAccidents(records); err != nil {
		log.Panicf("replace accident dataset: %s", err)
	}

	log.WithFields(log.Fields{
		"prefix":  logPrefix,
		"records": len(records),
	}).Info("ingested collision export")
}

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/getsentry/sentry-go"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"

	"github.com/safestreets-inc/routesafety-api/api"
	"github.com/safestreets-inc/routesafety-api/external/directions"
	"github.com/safestreets-inc/routesafety-api/schema"
	"github.com/safestreets-inc/routesafety-api/score"
	"github.com/safestreets-inc/routesafety-api/store"
)

var (
	server       *api.Server
	datasetStore store.DatasetStore
)

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
	// Config from file
	viper.SetConfigType("yaml")
	if file != "" {
		viper.SetConfigFile(file)
	}

	viper.AddConfigPath("/.config/")
	viper.AddConfigPath(".")
	err := viper.ReadInConfig()
	if err != nil {
		fmt.Println("No config file. Read config from env.")
		viper.AllowEmptyEnv(false)
	}

	// Config from env if possible
	viper.AutomaticEnv()
	viper.SetEnvPrefix("routesafety")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	viper.SetDefault("server.port", "8080")
	viper.SetDefault("safety.threshold.meters", score.DefaultProximityMeters)
	viper.SetDefault("safety.weight.fatality", score.DefaultFatalityWeight)
	viper.SetDefault("safety.penalty.count.rate", score.DefaultCountPenaltyRate)
	viper.SetDefault("safety.penalty.count.cap", score.DefaultCountPenaltyCap)
	viper.SetDefault("safety.penalty.severity.rate", score.DefaultSeverityPenaltyRate)
	viper.SetDefault("safety.penalty.severity.cap", score.DefaultSeverityPenaltyCap)
	viper.SetDefault("safety.level.medium", score.DefaultLevelMediumFloor)
	viper.SetDefault("safety.level.high", score.DefaultLevelHighFloor)
	viper.SetDefault("safety.intensity.norm", score.DefaultIntensityNorm)
}

// policyFromConfig builds the safety policy out of configuration. A policy
// the aggregation cannot run on is fatal here; it is never re-checked per
// request.
func policyFromConfig() score.Policy {
	policy := score.Policy{
		ProximityMeters:     viper.GetFloat64("safety.threshold.meters"),
		FatalityWeight:      viper.GetFloat64("safety.weight.fatality"),
		CountPenaltyRate:    viper.GetFloat64("safety.penalty.count.rate"),
		CountPenaltyCap:     viper.GetFloat64("safety.penalty.count.cap"),
		SeverityPenaltyRate: viper.GetFloat64("safety.penalty.severity.rate"),
		SeverityPenaltyCap:  viper.GetFloat64("safety.penalty.severity.cap"),
		LevelMediumFloor:    viper.GetFloat64("safety.level.medium"),
		LevelHighFloor:      viper.GetFloat64("safety.level.high"),
		IntensityNorm:       viper.GetFloat64("safety.intensity.norm"),
	}

	if err := policy.Validate(); err != nil {
		log.Panicf("invalid safety policy configuration: %s", err)
	}
	return policy
}

// loadDataset builds the in-memory record set, from mongo when configured
// and from the collision export file otherwise. A missing or unparsable
// dataset is fatal.
func loadDataset(fatalityWeight float64) []schema.AccidentRecord {
	if datasetStore != nil {
		records, err := datasetStore.LoadAccidents()
		if err != nil {
			log.Panicf("load accident dataset from mongo: %s", err)
		}
		return records
	}

	records, err := store.LoadCSVFile(viper.GetString("dataset.file"), fatalityWeight)
	if err != nil {
		log.Panicf("load accident dataset from %s: %s", viper.GetString("dataset.file"), err)
	}
	return records
}

func main() {
	var configFile string

	flag.StringVar(&configFile, "c", "./config.yaml", "[optional] path of configuration file")
	flag.Parse()

	loadConfig(configFile)

	initLog()

	// Sentry
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:              viper.GetString("sentry.dsn"),
		AttachStacktrace: true,
		Environment:      viper.GetString("sentry.environment"),
		Dist:             viper.GetString("sentry.dist"),
	}); err != nil {
		log.Error(err)
	}
	log.WithField("prefix", "init").Info("Initialized sentry")

	policy := policyFromConfig()

	// initialise mongodb connections when a canonical dataset store is
	// configured
	if conn := viper.GetString("mongo.conn"); conn != "" {
		opts := options.Client().ApplyURI(conn)
		opts.SetMaxPoolSize(viper.GetUint64("mongo.pool"))
		mongoClient, err := mongo.NewClient(opts)
		if nil != err {
			log.Panicf("create mongo client with error: %s", err)
		}
		if err := mongoClient.Connect(context.Background()); nil != err {
			log.Panicf("connect mongo database with error: %s", err)
		}
		datasetStore = store.NewMongoDatasetStore(mongoClient, viper.GetString("mongo.database"))
	}

	accidentStore := store.NewInMemoryStore(loadDataset(policy.FatalityWeight))
	log.WithFields(log.Fields{
		"prefix":  "init",
		"records": accidentStore.Count(),
	}).Info("Built accident snapshot")

	// Optional route planner
	var planner directions.RoutePlanner
	if apiKey := viper.GetString("directions.apikey"); apiKey != "" {
		p, err := directions.New(apiKey)
		if err != nil {
			log.Panicf("create directions client with error: %s", err)
		}
		planner = p
		log.WithField("prefix", "init").Info("Initialized route planner")
	}

	// SIGHUP reloads the dataset into a fresh snapshot; in-flight requests
	// keep the snapshot they started with
	reload := make(chan os.Signal, 1)
	signal.Notify(reload, syscall.SIGHUP)
	go func() {
		for range reload {
			log.WithField("prefix", "init").Info("Reloading accident dataset")
			accidentStore.Reload(loadDataset(policy.FatalityWeight))
			log.WithFields(log.Fields{
				"prefix":  "init",
				"records": accidentStore.Count(),
			}).Info("Swapped accident snapshot")
		}
	}()

	c := make(chan os.Signal, 2)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		log.Info("Server is preparing to shutdown")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if server != nil {
			log.Info("Shutdown route safety api server")
			if err := server.Shutdown(ctx); err != nil {
				log.Error("Server Shutdown:", err)
			}
		}

		if datasetStore != nil {
			log.Info("Shutting down dataset store")
			datasetStore.Close()
		}

		os.Exit(1)
	}()

	// Init http server
	server = api.NewServer(accidentStore, policy, planner)
	log.WithField("prefix", "init").Info("Initialized http server")

	log.Fatal(server.Run(":" + viper.GetString("server.port")))
}

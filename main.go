package main

import (
	"flag"
	"log"
	"os"

	"github.com/sentinelsec/sentinel-backend/cmd"
)

func main() {
	shouldRunMigrations := flag.Bool("migrations", false, "Run database migrations")
	shouldRunServer := flag.Bool("server", false, "Run the api server")
	shouldRunScheduler := flag.Bool("scheduler", false, "Run the job scheduler")
	flag.Parse()

	if *shouldRunMigrations {
		if err := cmd.RunMigrations(); err != nil {
			os.Exit(1)
		}
	}
	if *shouldRunServer {
		if err := cmd.RunServer(); err != nil {
			os.Exit(1)
		}
	}
	if *shouldRunScheduler {
		if err := cmd.RunJobScheduler(); err != nil {
			os.Exit(1)
		}
	}

	if !*shouldRunMigrations && !*shouldRunServer && !*shouldRunScheduler {
		log.Fatal("specify at least one of -migrations, -server, -scheduler")
	}
}

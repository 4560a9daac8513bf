package main

import (
	"os"

	ai "github.com/cs-au-dk/absint/analysis/absint"
	"github.com/cs-au-dk/absint/utils"

	log "github.com/sirupsen/logrus"
)

var (
	opts = utils.Opts()
	task = opts.Task()
)

func main() {
	utils.ParseArgs()
	path := utils.MakePath()

	cfg, err := utils.LoadConfig()
	if err != nil {
		log.Fatalln(err)
	}

	pl, err := load(path)
	if err != nil {
		log.Errorln("Failed loading", path)
		log.Errorln(err)
		os.Exit(1)
	}

	if task.IsCanBuild() {
		log.Println("SSA construction succeeded")
		return
	}

	funs, err := pl.entryFunctions(cfg.EntryPrefix)
	if err != nil {
		log.Fatalln(err)
	}
	if len(funs) == 0 {
		log.Println("No functions with prefix", cfg.EntryPrefix)
		return
	}

	if !task.IsAbstractInterpretation() {
		if err := secondaryTask(funs); err != nil {
			log.Fatalln(err)
		}
		return
	}

	analysis, ok := ai.Lookup(task.Name())
	if !ok {
		log.Fatalf("No analysis for task %s", task.Name())
	}
	if err := ai.Run(analysis, funs, cfg, os.Stdout); err != nil {
		log.Fatalln(err)
	}
}

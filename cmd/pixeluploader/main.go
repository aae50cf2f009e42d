package main

import (
	"flag"
	"fmt"

	uploader "github.com/AsithaLKonara/Microcontroller-Uploader"
	log "github.com/sirupsen/logrus"
)

var commands = map[string]func(uploader.Config, []string){
	"upload":   processUpload,
	"validate": processValidate,
	"info":     processInfo,
	"ports":    processPorts,
	"samples":  processSamples,
	"convert":  processConvert,
	"reset":    processReset,
}

const appVersion = "2.0.0"

func main() {
	version := flag.Bool("version", false, "Prints the program version.")
	configFile := flag.String("config", "", "Config yaml file. Defaults to the per-user config path.")
	port := flag.String("port", "", "Serial port name.")
	baud := flag.Int("baud", 0, "Baud rate.")
	timeout := flag.Int("timeout", 0, "Acknowledgement timeout in milliseconds.")
	maxBytes := flag.Int("max", 0, "Maximum accepted pattern size in bytes.")
	noReset := flag.Bool("no-reset", false, "Skip the device reset after a successful upload.")
	verbose := flag.Bool("v", false, "Enable verbose logging.")

	cmdList := []string{}
	for key := range commands {
		cmdList = append(cmdList, key)
	}
	command := flag.String("cmd", "", fmt.Sprintf("Command to run, one of: %+v\n"+
		"upload/validate/info take a .dat file, e.g. upload heart.dat\n"+
		"convert takes a hex file and a .dat file, e.g. convert heart.hex heart.dat\n"+
		"samples takes a directory and an optional matrix width, e.g. samples ./SamplePatterns 16\n"+
		"With no -cmd, a single .dat file argument is uploaded.",
		cmdList))

	flag.Parse()

	if *version {
		fmt.Println(appVersion)
		return
	}

	if *verbose {
		log.SetLevel(log.DebugLevel)
	}

	uploader.SetLogger(log.StandardLogger())

	cfg := loadConfig(*configFile)
	if *port != "" {
		cfg.Port = *port
	}
	if *baud != 0 {
		cfg.Baud = *baud
	}
	if *timeout != 0 {
		cfg.TimeoutMs = *timeout
	}
	if *maxBytes != 0 {
		cfg.MaxPatternBytes = *maxBytes
	}
	if *noReset {
		cfg.ResetAfterUpload = false
	}

	switch {
	case *command != "":
		f, ok := commands[*command]
		if !ok {
			log.Fatalf("invalid command %v", *command)
		}
		f(cfg, flag.Args())

	default:
		if len(flag.Args()) != 1 {
			log.Fatalf("must specify pattern file to upload")
		}
		processUpload(cfg, flag.Args())
	}
}

func loadConfig(path string) uploader.Config {
	var err error
	if path == "" {
		path, err = uploader.DefaultConfigPath()
		if err != nil {
			log.Debugf("no config path: %v", err)
			return uploader.DefaultConfig()
		}
	}
	cfg, err := uploader.LoadConfig(path)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	return cfg
}

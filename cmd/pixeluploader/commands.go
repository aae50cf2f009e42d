package main

import (
	"fmt"
	"strconv"

	uploader "github.com/AsithaLKonara/Microcontroller-Uploader"
	log "github.com/sirupsen/logrus"
)

func processUpload(cfg uploader.Config, args []string) {
	if len(args) != 1 {
		log.Fatalf("expected: patternfile")
	}
	if cfg.Port == "" {
		log.Fatal("must specify port")
	}

	info, err := uploader.ValidatePatternFile(args[0], cfg.MaxPatternBytes)
	if err != nil {
		log.Fatalf("invalid pattern file: %v", err)
	}
	log.Infof("uploading %v (%v)...", args[0], info)

	if err := uploader.New(cfg).UploadFile(args[0]); err != nil {
		switch uploader.KindOf(err) {
		case uploader.KindTimeout:
			log.Fatalf("upload not acknowledged: %v", err)
		case uploader.KindUnexpectedResponse:
			log.Fatalf("device rejected the pattern: %v", err)
		default:
			log.Fatalf("upload failed: %v", err)
		}
	}
	log.Infof("upload complete, check the LED matrix")
}

func processValidate(cfg uploader.Config, args []string) {
	if len(args) != 1 {
		log.Fatalf("expected: patternfile")
	}
	info, err := uploader.ValidatePatternFile(args[0], cfg.MaxPatternBytes)
	if err != nil {
		log.Fatalf("invalid pattern file: %v", err)
	}
	log.Infof("valid LED pattern: %v", info)
}

func processInfo(cfg uploader.Config, args []string) {
	if len(args) != 1 {
		log.Fatalf("expected: patternfile")
	}
	info, err := uploader.ValidatePatternFile(args[0], cfg.MaxPatternBytes)
	if err != nil {
		log.Fatalf("invalid pattern file: %v", err)
	}
	fmt.Printf("pattern:  %v\n", args[0])
	fmt.Printf("geometry: %v\n", info)
	fmt.Printf("leds:     %v\n", info.LEDCount)
	fmt.Printf("frame:    %v bytes on the wire\n", info.Bytes+9)
}

func processPorts(cfg uploader.Config, args []string) {
	ports, err := uploader.ListPorts()
	if err != nil {
		log.Fatalf("failed to list ports: %v", err)
	}
	if len(ports) == 0 {
		log.Warn("no serial ports detected")
		return
	}
	for _, p := range ports {
		if p.IsUSB {
			fmt.Printf("%v\tUSB %v:%v %v\n", p.Name, p.VID, p.PID, p.Product)
		} else {
			fmt.Println(p.Name)
		}
	}
}

func processSamples(cfg uploader.Config, args []string) {
	if len(args) < 1 || len(args) > 2 {
		log.Fatalf("expected: dir [matrixwidth]")
	}
	size := uploader.Matrix8x8
	if len(args) == 2 {
		w, err := strconv.Atoi(args[1])
		if err != nil {
			log.Fatalf("invalid matrix width: %v", err)
		}
		size = uploader.MatrixSize{Width: w, Height: w}
	}
	files, err := uploader.WriteSamples(args[0], size)
	if err != nil {
		log.Fatalf("failed to write samples: %v", err)
	}
	log.Infof("created %v sample patterns in %v", len(files), args[0])
}

func processConvert(cfg uploader.Config, args []string) {
	if len(args) != 2 {
		log.Fatalf("expected: hexfile datfile")
	}
	info, err := uploader.ConvertHexFile(args[0], args[1])
	if err != nil {
		log.Fatalf("conversion failed: %v", err)
	}
	log.Infof("wrote %v (%v)", args[1], info)
}

func processReset(cfg uploader.Config, args []string) {
	if cfg.Port == "" {
		log.Fatal("must specify port")
	}
	if err := uploader.ResetDevice(cfg.Port); err != nil {
		log.Fatalf("failed to reset device: %v", err)
	}
	log.Infof("device on %v reset", cfg.Port)
}

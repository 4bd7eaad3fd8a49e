package main

import (
	"flag"
	"io"
	"os"
	"pokerroom-server/internal/config"

	"gopkg.in/yaml.v2"
)

var out = flag.String("o", "", "write the config to this file instead of stdout")

func main() {
	flag.Parse()

	var w io.Writer = os.Stdout
	if *out != "" {
		file, err := os.Create(*out)
		if err != nil {
			panic(err)
		}
		defer file.Close()
		w = file
	}

	if err := yaml.NewEncoder(w).Encode(config.DefaultConfig()); err != nil {
		panic(err)
	}
}

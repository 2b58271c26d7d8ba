package main

import (
	"flag"
	"log"

	"go.uber.org/zap"

	"vesseldocs-backend/infrastructure/corpus"
)

func main() {
	root := flag.String("root", "./corpus", "directory to write the corpus into")
	seed := flag.Int64("seed", 42, "random seed for reproducible output")
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	gen := corpus.NewGenerator(*root, *seed, logger)
	count, err := gen.Generate()
	if err != nil {
		logger.Fatal("Corpus generation failed", zap.Error(err))
	}

	logger.Info("Corpus generated",
		zap.String("root", *root),
		zap.Int("documents", count),
	)
}

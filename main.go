package main

import (
	"context"

	log "github.com/sirupsen/logrus"

	bigqueryclient "github.com/andrewwkimm/Barstool-Sports-Data-Pipeline/clients/bigquery"
	gcsclient "github.com/andrewwkimm/Barstool-Sports-Data-Pipeline/clients/gcs"
	s3client "github.com/andrewwkimm/Barstool-Sports-Data-Pipeline/clients/s3"
	"github.com/andrewwkimm/Barstool-Sports-Data-Pipeline/config"
	"github.com/andrewwkimm/Barstool-Sports-Data-Pipeline/pipeline"
	"github.com/andrewwkimm/Barstool-Sports-Data-Pipeline/readers"
)

func startUp() {
	log.SetFormatter(&log.TextFormatter{
		TimestampFormat: "2006-01-02 15:04:05",
		ForceColors:     true,
		FullTimestamp:   true,
	})
}

// jsonlNestedFields are the fields of the sampled-data export whose string
// values hold embedded JSON objects.
var jsonlNestedFields = []string{"LOG", "GEO"}

func sources(cfg *config.Config) []pipeline.Source {
	dest := func(table string) bigqueryclient.Destination {
		return bigqueryclient.Destination{
			Project: cfg.ProjectID,
			Dataset: cfg.Dataset,
			Table:   table,
		}
	}

	return []pipeline.Source{
		{
			Name:        "prod_contents",
			Bucket:      cfg.Bucket,
			Key:         "BARSTOOL_PROD_CONTENT_PROD_CONTENTS_3.csv",
			Read:        readers.CSV,
			Dest:        dest("prod_contents"),
			Disposition: bigqueryclient.Replace,
		},
		{
			Name:        "brands_talent_franchise",
			Bucket:      cfg.Bucket,
			Key:         "brands-talent-franchise.html",
			Read:        readers.HTMLTable,
			Dest:        dest("brands_talent_franchise"),
			Disposition: bigqueryclient.Replace,
		},
		{
			Name:        "sample_data",
			Bucket:      cfg.Bucket,
			Key:         "sampled_data.jsonl",
			Read:        readers.JSONL(jsonlNestedFields...),
			Dest:        dest("sample_data"),
			Disposition: bigqueryclient.Replace,
		},
	}
}

func main() {
	startUp()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalln(err)
	}

	ctx := context.Background()

	var fetcher pipeline.Fetcher
	switch cfg.BlobStore {
	case config.StoreS3:
		fetcher, err = s3client.NewClient(cfg.AWSRegion)
	default:
		fetcher, err = gcsclient.NewClient(ctx, cfg.CredentialsFile)
	}
	if err != nil {
		log.Fatalln(err)
	}

	bqClient, err := bigqueryclient.NewClient(ctx, cfg.ProjectID, cfg.CredentialsFile)
	if err != nil {
		log.Fatalln(err)
	}
	defer bqClient.Close()

	srcs := sources(cfg)

	log.WithFields(log.Fields{
		"bucket":  cfg.Bucket,
		"store":   cfg.BlobStore,
		"dataset": cfg.Dataset,
		"sources": len(srcs),
	}).Infoln("loading sources into BigQuery")

	runCtx, cancel := context.WithTimeout(ctx, cfg.LoadTimeout)
	defer cancel()

	p := pipeline.New(fetcher, bqClient, srcs, cfg.MaxParallel)
	if err := p.Run(runCtx); err != nil {
		log.Fatalln(err)
	}

	if len(cfg.TransformStatements) > 0 {
		t := pipeline.NewTransform(bqClient, cfg.TransformStatements, cfg.ProjectID, cfg.Dataset)
		if err := t.Run(runCtx); err != nil {
			log.Fatalln(err)
		}
	}

	for _, src := range srcs {
		count, err := bqClient.RowCount(ctx, src.Dest)
		if err != nil {
			log.WithFields(log.Fields{
				"destination": src.Dest.String(),
				"error":       err,
			}).Warnln("could not read back row count")
			continue
		}
		log.WithFields(log.Fields{
			"destination": src.Dest.String(),
			"rows":        count,
		}).Infoln("destination row count")
	}
}

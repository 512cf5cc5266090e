// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// envKeyReplacer maps nested keys such as dataset.s3.bucket to
// ELASTIC_TUTORIAL_DATASET_S3_BUCKET.
var envKeyReplacer = strings.NewReplacer(".", "_")

// datasetFlags maps dataset flags to their configuration keys.
var datasetFlags = map[string]string{
	"source":         "dataset.source",
	"url":            "dataset.url",
	"file":           "dataset.path",
	"bucket":         "dataset.s3.bucket",
	"key":            "dataset.s3.key",
	"region":         "dataset.s3.region",
	"endpoint":       "dataset.s3.endpoint",
	"use-path-style": "dataset.s3.use_path_style",
	"sha256":         "dataset.sha256",
	"timeout":        "dataset.timeout",
}

// addDatasetFlags registers the flags that select and verify the dataset source.
func addDatasetFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("source", "", "dataset source: url, file, or s3 (default url)")
	f.String("url", "", "dataset download URL")
	f.String("file", "", "local .json or .json.gz dataset file (file source)")
	f.String("bucket", "", "S3 bucket holding the dataset mirror (s3 source)")
	f.String("key", "", "S3 object key of the dataset mirror (s3 source)")
	f.String("region", "", "S3 region")
	f.String("endpoint", "", "S3-compatible endpoint URL")
	f.Bool("use-path-style", false, "address the bucket as endpoint/bucket/key")
	f.String("sha256", "", "expected SHA-256 of the raw dataset payload")
	f.Duration("timeout", 0, "HTTP request timeout (default 5m)")
}

// bindFlags binds the changed flags of cmd to viper keys. Binding happens
// at run time so commands sharing flag names do not overwrite each other.
func bindFlags(cmd *cobra.Command, keys map[string]string) error {
	for name, key := range keys {
		fl := cmd.Flags().Lookup(name)
		if fl == nil || !fl.Changed {
			continue
		}
		if err := viper.BindPFlag(key, fl); err != nil {
			return err
		}
	}
	return nil
}

package main

import (
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ryferguson/cornwand/internal/errors"
	"github.com/ryferguson/cornwand/pkg/publish"
)

func publishCmd(a *app) *cobra.Command {
	var (
		bucket       string
		prefix       string
		cacheControl string
	)

	cmd := &cobra.Command{
		Use:   "publish FILE...",
		Short: "Render documents and upload them to S3",
		Long: `Render each document and upload it to S3 as NAME.html, where NAME
is the file name without its .json extension.

Credentials come from WAND_PUBLISH_ACCESS_KEY_ID,
WAND_PUBLISH_SECRET_ACCESS_KEY and WAND_PUBLISH_SESSION_TOKEN.

Examples:
  wand publish site/*.json --bucket=my-site
  wand publish site/index.json --bucket=my-site --prefix=docs/`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.cfg.Publish
			if bucket != "" {
				cfg.Bucket = bucket
			}
			if cmd.Flags().Changed("prefix") {
				cfg.Prefix = prefix
			}
			if cacheControl != "" {
				cfg.CacheControl = cacheControl
			}
			if cfg.Bucket == "" {
				return errors.New("W402").
					WithExample("wand publish site/index.json --bucket=my-site")
			}

			p := publish.New(a.newPutter(cfg), cfg.Bucket, cfg.Prefix,
				publish.WithCacheControl(cfg.CacheControl),
				publish.WithLogger(a.logger),
			)

			out := cmd.OutOrStdout()
			for _, file := range args {
				doc, err := loadDocument(file, cmd.InOrStdin())
				if err != nil {
					return err
				}

				name := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
				key, err := p.PublishDocument(cmd.Context(), name, doc)
				if err != nil {
					return errors.New("W401").
						WithLocation(file, "").
						Wrap(err)
				}
				success(out, "%s → s3://%s/%s", file, cfg.Bucket, key)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&bucket, "bucket", "b", "", "Destination bucket (default from wand.json)")
	cmd.Flags().StringVar(&prefix, "prefix", "", "Key prefix (default from wand.json)")
	cmd.Flags().StringVar(&cacheControl, "cache-control", "", "Cache-Control of uploaded objects")

	return cmd
}

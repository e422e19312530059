// Package publish uploads rendered documents to an S3 bucket.
//
//	client := publish.NewClient(publish.ClientOptions{Region: "eu-west-1"})
//	p := publish.New(client, "my-site", "docs/",
//		publish.WithCacheControl("max-age=300"))
//	key, err := p.PublishDocument(ctx, "index", doc)
//
// Any S3-compatible store works: set ClientOptions.Endpoint and PathStyle
// for MinIO and friends.
package publish

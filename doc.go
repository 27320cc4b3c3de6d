// Package contentd provides an embeddable Go client for contentd: articles
// stored as hashes in Valkey or Redis, and free-text search forwarded to a
// Solr article core.
//
//	client, _ := contentd.New(
//	    contentd.WithValkey("localhost:6379", ""),
//	    contentd.WithSolr("http://localhost:8983"),
//	)
//	defer client.Close()
//
//	_ = client.SaveArticle(ctx, contentd.Article{ID: id, Title: "Hello", Body: "World"})
//	a, _ := client.Article(ctx, id)
//	raw, _ := client.Search(ctx, "hello")
package contentd

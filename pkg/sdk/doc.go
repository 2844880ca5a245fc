// Package gallformers embeds the gallformers glossary linker and gall search
// in a Go program, backed by Redis (with RedisJSON) or a local SQLite file.
//
//	client, _ := gallformers.New(ctx, gallformers.WithSQLite("gallformers.db"))
//	defer client.Close()
//
//	_, _ = client.Glossary().Upsert(ctx, gallformers.Entry{
//	    Word:       "detachable",
//	    Definition: "A gall that falls off its host when mature.",
//	})
//	segs, _ := client.Glossary().Link(ctx, "Most galls are detachable.", false)
//
//	res, _ := client.Search().
//	    Color("red").
//	    Location(gallformers.LeafAnywhere).
//	    Detachable(true).
//	    Limit(10).
//	    Do(ctx)
package gallformers

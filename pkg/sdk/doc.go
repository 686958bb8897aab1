// Package cinedex embeds the movie catalogue services in a Go program
// without going through the HTTP API.
//
//	client, _ := cinedex.New(ctx,
//	    cinedex.WithMongo("mongodb://localhost:27017", "sample_mflix"),
//	    cinedex.WithVoyage(os.Getenv("VOYAGE_API_KEY")),
//	)
//	defer client.Close(ctx)
//
//	page, _ := client.Movies().List(ctx, cinedex.ListOptions{Genre: "Drama", Limit: 10})
//	hits, _ := client.Search().Vector(ctx, "a heist that goes wrong", 5)
//	years, _ := client.Reports().ByYear(ctx)
package cinedex

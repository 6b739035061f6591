// Package knowdex builds a semantic knowledge base over a tabular corpus:
// each record becomes a retrievable document, documents are embedded in one
// batched call, and an exact nearest-neighbor index plus density-based topic
// discovery are computed lazily on first use.
//
// # Building a knowledge base
//
//	records := []knowdex.Record{
//	    {{Name: "Q", Value: "How do I reset my password?"}, {Name: "A", Value: "Use the account page."}},
//	    {{Name: "Q", Value: "How do I close my account?"}, {Name: "A", Value: "Contact support."}},
//	}
//	kb, err := knowdex.New(records, knowdex.WithSeed(42))
//
// # Searching and sampling
//
//	results, _ := kb.SimilaritySearch(ctx, []string{"password reset"}, 4)
//	doc := kb.RandomDocument()
//	group, _ := kb.RandomDocumentGroup(ctx)
//
// # Topics
//
//	topics, _ := kb.Topics(ctx)
//	for _, d := range kb.Documents() {
//	    if id, ok := d.TopicID(); ok {
//	        fmt.Println(topics[id], d.Content())
//	    }
//	}
//
// Corpora can be loaded from CSV or Parquet files via the corpus subpackage.
//
// A KnowledgeBase is built for single-goroutine use: lazy materialization of
// embeddings, index and topics is not synchronized.
package knowdex

package knowdex

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// NoTopic is the topic id of documents the clustering deemed noise.
const NoTopic = -1

// topicMaxChars caps the concatenated cluster contents sent to the
// completion backend, guarding its context window.
const topicMaxChars = 3 * 8192

// topicDelimiter prefixes each document inside a topic naming request.
const topicDelimiter = "----------"

const topicNamePrompt = `Your task is to define the topic which best represents a set of documents.

You are given a list of documents and you must extract the topic that best represents ALL of them.
- The topic name should be between 3 and 5 words.
- Provide the topic name in this language: %s.

The documents are separated by dashes "----------".

Make sure to only return the topic name wrapped in double quotes, and nothing else.`

// Topics lazily partitions all documents into topics and names each one via
// the completion backend. Every document receives a topic id; noise documents
// receive NoTopic, and the mapping always carries NoTopic -> "Others".
//
// The result is cached for the lifetime of the instance: repeated calls
// return the identical mapping without re-invoking the clustering or
// completion backends. A failed computation leaves the cache empty and is
// retried wholesale on the next call.
func (kb *KnowledgeBase) Topics(ctx context.Context) (map[int]string, error) {
	if kb.topics != nil {
		return kb.topics, nil
	}

	embs, err := kb.Embeddings(ctx)
	if err != nil {
		return nil, err
	}

	labels, err := kb.clusterer.Cluster(embs)
	if err != nil {
		return nil, fmt.Errorf("knowdex: cluster topics: %w", err)
	}
	if len(labels) != len(kb.docs) {
		return nil, fmt.Errorf("knowdex: clusterer returned %d labels for %d documents", len(labels), len(kb.docs))
	}

	members := make(map[int][]*Document)
	maxID := NoTopic
	for i, label := range labels {
		kb.docs[i].setTopic(label)
		if label == NoTopic {
			continue
		}
		members[label] = append(members[label], kb.docs[i])
		if label > maxID {
			maxID = label
		}
	}

	// Name clusters in ascending id order so that, for a fixed seed,
	// the random source is consumed identically across runs.
	topics := make(map[int]string, len(members)+1)
	for id := 0; id <= maxID; id++ {
		docs, ok := members[id]
		if !ok {
			continue
		}
		name, err := kb.topicName(ctx, docs)
		if err != nil {
			return nil, err
		}
		topics[id] = name
	}
	topics[NoTopic] = "Others"

	kb.logger.Debug("topics computed",
		zap.Int("clusters", len(members)),
		zap.Int("noise_documents", len(kb.docs)-clusteredCount(members)),
	)

	kb.topics = topics
	return kb.topics, nil
}

// topicName asks the completion backend for a short label of one cluster.
// Members are shuffled with the knowledge base's random source, joined with
// the delimiter and truncated to the context budget.
func (kb *KnowledgeBase) topicName(ctx context.Context, members []*Document) (string, error) {
	kb.rng.Shuffle(len(members), func(i, j int) {
		members[i], members[j] = members[j], members[i]
	})

	paragraphs := make([]string, len(members))
	for i, d := range members {
		paragraphs[i] = topicDelimiter + d.Content()
	}
	contents := truncateChars(strings.Join(paragraphs, "\n\n"), topicMaxChars)

	res, err := kb.completer.Complete(ctx, []ChatMessage{
		{Role: RoleSystem, Content: fmt.Sprintf(topicNamePrompt, kb.language)},
		{Role: RoleUser, Content: contents},
	})
	if err != nil {
		return "", fmt.Errorf("knowdex: name topic: %w", err)
	}

	return stripOuterChars(res.Message.Content), nil
}

// truncateChars cuts s to at most n characters (runes, not bytes).
func truncateChars(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// stripOuterChars removes exactly one leading and one trailing character,
// unconditionally. The naming prompt asks for the answer wrapped in quotes.
func stripOuterChars(s string) string {
	runes := []rune(s)
	if len(runes) < 2 {
		return ""
	}
	return string(runes[1 : len(runes)-1])
}

func clusteredCount(members map[int][]*Document) int {
	n := 0
	for _, docs := range members {
		n += len(docs)
	}
	return n
}

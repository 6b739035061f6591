// Package corpus loads tabular corpora (CSV, Parquet or plain Go
// structs) into the ordered records a knowledge base is built from.
package corpus

// Package ingest loads relation datasets and normalizes their rows.
//
// A dataset is delimiter-separated text with a header row naming at least
// the eight [Columns]. Each data row describes one relation between two
// entities:
//
//	from_id,topic_from,topic_name_from,from_text,to_id,topic_to,topic_name_to,to_text
//	i1,3,3_law_courts,Sciences Po,s9,7,7_elections_vote,Voting behaviour
//
// [Loader] obtains the bytes from disk or over HTTP, [Decode] parses them
// into a [Batch] of records, and [Batch.Build] folds the records into a
// graph. Malformed rows never abort decoding; they are counted in
// [Batch.Skipped].
package ingest

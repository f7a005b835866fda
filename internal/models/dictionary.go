package models

// Definition is a single sense of a word.
type Definition struct {
	Definition   string `json:"definition"`
	PartOfSpeech string `json:"part_of_speech"`
	Example      string `json:"example,omitempty"`
}

// Example pairs a usage example with the part of speech it came from.
type Example struct {
	Example      string `json:"example"`
	PartOfSpeech string `json:"part_of_speech"`
}

// WordResult is the flattened dictionary lookup result returned to clients.
type WordResult struct {
	Word          string       `json:"word"`
	Language      string       `json:"language"`
	Pronunciation string       `json:"pronunciation,omitempty"`
	Phonetic      string       `json:"phonetic,omitempty"`
	Definitions   []Definition `json:"definitions"`
	Synonyms      []string     `json:"synonyms"`
	Antonyms      []string     `json:"antonyms"`
	Examples      []Example    `json:"examples"`
}

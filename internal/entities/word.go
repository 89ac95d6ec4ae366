package entities

// WordEntry is one headword returned by a dictionary lookup. A single search
// may return several entries (homographs).
type WordEntry struct {
	Word      string     `json:"word"`
	Phonetics []Phonetic `json:"phonetics"`
	Meanings  []Meaning  `json:"meanings"`
}

// Phonetic is a pronunciation of a headword: a transcription, an audio clip, or both.
type Phonetic struct {
	Text      string `json:"text,omitempty"`
	Audio     string `json:"audio,omitempty"`
	SourceURL string `json:"sourceUrl,omitempty"`
}

// Playable reports whether the phonetic carries an audio clip.
func (p Phonetic) Playable() bool {
	return p.Audio != ""
}

// Meaning groups definitions under one part of speech.
type Meaning struct {
	PartOfSpeech string       `json:"partOfSpeech"`
	Definitions  []Definition `json:"definitions"`
}

type Definition struct {
	Definition string `json:"definition"`
	Example    string `json:"example,omitempty"`
}

// APIError is the body the dictionary service returns when a term has no entry.
type APIError struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

func (e APIError) Error() string {
	if e.Message == "" {
		return e.Title
	}
	return e.Title + ": " + e.Message
}

// PlayableAudio returns the audio URLs of all playable phonetics, in order.
func (w WordEntry) PlayableAudio() []string {
	var urls []string
	for _, p := range w.Phonetics {
		if p.Playable() {
			urls = append(urls, p.Audio)
		}
	}
	return urls
}

// Package corpus bundles the static knowledge collections the assistant
// answers from. The data ships inside the binary and never changes at
// runtime.
package corpus

import (
	"embed"
	"encoding/json"
	"fmt"
)

//go:embed data/*.json
var dataFS embed.FS

// Document sources
const (
	SourceFAQ      = "faq"
	SourceTips     = "tips"
	SourcePlatform = "platform"
	SourceGeneral  = "general"
	SourceCreator  = "creator"
)

// Document is one Q&A entry with a source tag
type Document struct {
	Title    string   `json:"question"`
	Body     string   `json:"answer"`
	Keywords []string `json:"keywords"`
	Source   string   `json:"-"`
}

type qaEntry struct {
	Question string   `json:"question"`
	Answer   string   `json:"answer"`
	Keywords []string `json:"keywords"`
}

type articleEntry struct {
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Keywords []string `json:"keywords"`
}

type faqFile struct {
	FAQs []qaEntry `json:"faqs"`
}

type tipsFile struct {
	Tips []articleEntry `json:"tips"`
}

type platformFile struct {
	Platform []articleEntry `json:"platform"`
}

type extendedFile struct {
	GeneralQA         []qaEntry `json:"general_qa"`
	CreatorInfo       []qaEntry `json:"creator_info"`
	NoAnswerResponses []string  `json:"no_answer_responses"`
}

// Corpus is the merged, immutable document set
type Corpus struct {
	Documents         []Document
	NoAnswerResponses []string
}

// Load parses all bundled collections into one tagged document list
func Load() (*Corpus, error) {
	var faq faqFile
	if err := loadJSON("data/faq.json", &faq); err != nil {
		return nil, err
	}

	var tips tipsFile
	if err := loadJSON("data/eco_tips.json", &tips); err != nil {
		return nil, err
	}

	var platform platformFile
	if err := loadJSON("data/platform.json", &platform); err != nil {
		return nil, err
	}

	var extended extendedFile
	if err := loadJSON("data/extended_knowledge.json", &extended); err != nil {
		return nil, err
	}

	c := &Corpus{NoAnswerResponses: extended.NoAnswerResponses}

	for _, e := range faq.FAQs {
		c.Documents = append(c.Documents, Document{Title: e.Question, Body: e.Answer, Keywords: e.Keywords, Source: SourceFAQ})
	}
	for _, e := range tips.Tips {
		c.Documents = append(c.Documents, Document{Title: e.Title, Body: e.Content, Keywords: e.Keywords, Source: SourceTips})
	}
	for _, e := range platform.Platform {
		c.Documents = append(c.Documents, Document{Title: e.Title, Body: e.Content, Keywords: e.Keywords, Source: SourcePlatform})
	}
	for _, e := range extended.GeneralQA {
		c.Documents = append(c.Documents, Document{Title: e.Question, Body: e.Answer, Keywords: e.Keywords, Source: SourceGeneral})
	}
	for _, e := range extended.CreatorInfo {
		c.Documents = append(c.Documents, Document{Title: e.Question, Body: e.Answer, Keywords: e.Keywords, Source: SourceCreator})
	}

	return c, nil
}

func loadJSON(name string, v any) error {
	data, err := dataFS.ReadFile(name)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return nil
}

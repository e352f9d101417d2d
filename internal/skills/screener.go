package skills

// Report is the outcome of screening one resume against one job description.
type Report struct {
	ResumeSkills   SkillSet    `json:"resume_skills"`
	RequiredSkills SkillSet    `json:"required_skills"`
	Result         MatchResult `json:"result"`
	// Degraded is set when no tokenizer was available, so both sets are empty.
	Degraded bool `json:"degraded,omitempty"`
}

// Screener chains tokenization, extraction and matching. It holds no mutable
// state and may be shared between goroutines as long as its Tokenizer is.
type Screener struct {
	Tokenizer  Tokenizer
	Vocabulary *Vocabulary
}

func NewScreener(tokenizer Tokenizer, vocabulary *Vocabulary) *Screener {
	if vocabulary == nil {
		vocabulary = DefaultVocabulary()
	}
	return &Screener{Tokenizer: tokenizer, Vocabulary: vocabulary}
}

// Extract returns the vocabulary skills mentioned in text.
func (s *Screener) Extract(text string) SkillSet {
	if s.Degraded() {
		return SkillSet{}
	}
	return ExtractSkills(Tokenize(text, s.Tokenizer), s.Vocabulary)
}

func (s *Screener) Screen(resumeText, jobText string) Report {
	resume := s.Extract(resumeText)
	required := s.Extract(jobText)

	return Report{
		ResumeSkills:   resume,
		RequiredSkills: required,
		Result:         Match(resume, required),
		Degraded:       s.Degraded(),
	}
}

// Degraded reports whether the screener has no usable tokenizer.
func (s *Screener) Degraded() bool {
	return !Available(s.Tokenizer)
}

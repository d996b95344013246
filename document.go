package polarity

// A Document represents a body of text flowing through a Pipeline.
//
// Documents are created by the pipeline (see Pipeline.NewDoc); stages fill in
// sentences and attribute slots but never replace the Document itself.
type Document struct {
	Text string

	sentences []*Sentence
	attrs     attrs
}

// Sentences returns `doc`'s sentences. It is empty unless a segmentation stage
// has run.
func (doc *Document) Sentences() []*Sentence {
	return doc.sentences
}

// SetSentences replaces `doc`'s sentence spans. Segmentation stages call it.
func (doc *Document) SetSentences(sents []*Sentence) {
	doc.sentences = sents
}

// Attr returns the value of the named doc extension. Unset slots read back the
// extension's registered default; ok is false if name was never registered.
func (doc *Document) Attr(name string) (any, bool) {
	return doc.attrs.get(DocTarget, name)
}

// SetAttr writes the named doc extension, overwriting any previous value.
func (doc *Document) SetAttr(name string, value any) error {
	return doc.attrs.set(DocTarget, name, value)
}

// Polarity returns the document-level polarity score. ok is false until the
// polarity stage has written it.
func (doc *Document) Polarity() (float64, bool) {
	return polarityOf(doc.Attr(PolarityAttr))
}

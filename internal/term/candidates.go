package term

// PageCandidateTermList holds the candidate terms found on one page.
type PageCandidateTermList struct {
	PageNum    int    `json:"page_num"`
	Candidates []Term `json:"candidates"`
}

// PDFCandidateTermList holds the candidate terms of one document, page by page.
type PDFCandidateTermList struct {
	Path  string                  `json:"path"`
	Pages []PageCandidateTermList `json:"pages"`
}

// DomainCandidateTermList groups the candidate lists of every document in a
// domain. It is the unit of analysis for frequency counting and ranking.
type DomainCandidateTermList struct {
	Domain string                 `json:"domain"`
	PDFs   []PDFCandidateTermList `json:"pdfs"`
}

// Walk calls fn for every term of the domain in document, page, term order.
func (d DomainCandidateTermList) Walk(fn func(pdf PDFCandidateTermList, page PageCandidateTermList, t Term)) {
	for _, pdf := range d.PDFs {
		for _, page := range pdf.Pages {
			for _, t := range page.Candidates {
				fn(pdf, page, t)
			}
		}
	}
}

// Count returns the total number of terms in the domain.
func (d DomainCandidateTermList) Count() int {
	n := 0
	for _, pdf := range d.PDFs {
		for _, page := range pdf.Pages {
			n += len(page.Candidates)
		}
	}
	return n
}

// NoStyleCandidates is the set of distinct candidate lemmas of a domain in
// first-seen order, each mapped to the first term observed with that lemma.
type NoStyleCandidates struct {
	order []string
	terms map[string]Term
}

// NoStyleCandidates deduplicates the domain's terms by lemma, ignoring style.
func (d DomainCandidateTermList) NoStyleCandidates() *NoStyleCandidates {
	c := &NoStyleCandidates{terms: make(map[string]Term)}
	d.Walk(func(_ PDFCandidateTermList, _ PageCandidateTermList, t Term) {
		lemma := t.Lemma()
		if _, seen := c.terms[lemma]; seen {
			return
		}
		c.order = append(c.order, lemma)
		c.terms[lemma] = t
	})
	return c
}

// Len returns the number of distinct lemmas.
func (c *NoStyleCandidates) Len() int {
	return len(c.order)
}

// Lemmas returns the distinct lemmas in first-seen order.
func (c *NoStyleCandidates) Lemmas() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Get returns the representative term for a lemma.
func (c *NoStyleCandidates) Get(lemma string) (Term, bool) {
	t, ok := c.terms[lemma]
	return t, ok
}

// Each calls fn for every lemma and representative term in first-seen order.
func (c *NoStyleCandidates) Each(fn func(lemma string, t Term)) {
	for _, lemma := range c.order {
		fn(lemma, c.terms[lemma])
	}
}

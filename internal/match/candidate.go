package match

import (
	"sort"

	"github.com/CadixDev/Lorenz-sub001/descriptor"
)

// Weights of the combined score when both sides carry a descriptor.
const (
	nameWeight       = 0.7
	descriptorWeight = 0.3
)

// Subject is a member taking part in ranking. Fields leave Descriptor nil.
type Subject struct {
	Name       string
	Descriptor *descriptor.MethodDescriptor
}

// Label returns the name followed by the descriptor, if any.
func (s Subject) Label() string {
	if s.Descriptor == nil {
		return s.Name
	}

	return s.Name + s.Descriptor.String()
}

// Candidate is a scored pool member.
type Candidate struct {
	Subject Subject

	// NameScore is the similarity of the normalized names (0-1).
	NameScore float64
	// DescriptorScore is the descriptor compatibility (0-1), zero for fields.
	DescriptorScore float64
	// Score combines both and ranks the candidate (higher is better).
	Score float64
}

// CandidateList is a list of candidates with ranking functionality.
type CandidateList []Candidate

// Rank scores every pool member against target and returns them best first.
func Rank(target Subject, pool []Subject) CandidateList {
	candidates := make(CandidateList, 0, len(pool))

	for _, s := range pool {
		c := Candidate{Subject: s, NameScore: Similarity(target.Name, s.Name)}
		c.Score = c.NameScore

		if target.Descriptor != nil && s.Descriptor != nil {
			c.DescriptorScore = DescriptorCompatibility(target.Descriptor, s.Descriptor)
			c.Score = nameWeight*c.NameScore + descriptorWeight*c.DescriptorScore
		}

		candidates = append(candidates, c)
	}

	sort.Sort(candidates)

	return candidates
}

// Above returns the candidates scoring at least threshold.
func (cl CandidateList) Above(threshold float64) CandidateList {
	var out CandidateList

	for _, c := range cl {
		if c.Score >= threshold {
			out = append(out, c)
		}
	}

	return out
}

// Labels returns the labels of at most limit candidates; limit <= 0 means all.
func (cl CandidateList) Labels(limit int) []string {
	if limit <= 0 || limit > len(cl) {
		limit = len(cl)
	}

	out := make([]string, 0, limit)
	for _, c := range cl[:limit] {
		out = append(out, c.Subject.Label())
	}

	return out
}

// Len implements sort.Interface.
func (cl CandidateList) Len() int { return len(cl) }

// Less orders by score, then by label for determinism.
func (cl CandidateList) Less(i, j int) bool {
	if cl[i].Score != cl[j].Score {
		return cl[i].Score > cl[j].Score
	}

	return cl[i].Subject.Label() < cl[j].Subject.Label()
}

// Swap implements sort.Interface.
func (cl CandidateList) Swap(i, j int) { cl[i], cl[j] = cl[j], cl[i] }

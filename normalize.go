package polarity

// Labels the normalizer requires of every Distribution.
const (
	LabelNegative = "negative"
	LabelNeutral  = "neutral"
	LabelPositive = "positive"
)

var requiredLabels = []string{LabelNegative, LabelNeutral, LabelPositive}

// Normalize collapses a three-way distribution into one polarity score,
// P(positive) - P(negative). Labels are matched exactly; a distribution
// missing any of them yields a *ContractError.
func Normalize(d Distribution) (float64, error) {
	var missing []string
	for _, label := range requiredLabels {
		if _, ok := d.Prob(label); !ok {
			missing = append(missing, label)
		}
	}
	if len(missing) > 0 {
		return 0, &ContractError{Missing: missing, Labels: d.Labels}
	}

	pos, _ := d.Prob(LabelPositive)
	neg, _ := d.Prob(LabelNegative)
	return pos - neg, nil
}

// NormalizeAll applies Normalize to each distribution in order.
func NormalizeAll(ds []Distribution) ([]float64, error) {
	scores := make([]float64, len(ds))
	for i, d := range ds {
		score, err := Normalize(d)
		if err != nil {
			return nil, err
		}
		scores[i] = score
	}
	return scores, nil
}

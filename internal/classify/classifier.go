package classify

type Classifier interface {
	Classify(localPart string) string
}

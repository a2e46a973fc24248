package cases

func faq(q, a string, sources ...Source) FAQ {
	if sources == nil {
		sources = []Source{}
	}
	return FAQ{Question: q, Answer: a, Sources: sources}
}

// exampleDataset is the single-category dataset used across tests.
func exampleDataset() *Dataset {
	return NewDataset([]Category{
		{
			Name: "Test",
			Items: []Case{
				{
					ID:                    1,
					Info:                  "Card X",
					TemporaryBanished:     Remembered,
					FlipFaceDown:          Forgotten,
					TemporaryBanishedFAQs: []FAQ{},
					FlipFaceDownFAQs: []FAQ{
						faq("Q1", "A1", Source{Text: "Ruling", URL: "https://example.com"}),
					},
				},
			},
		},
	})
}

// multiDataset has several categories of different sizes.
func multiDataset() *Dataset {
	return NewDataset([]Category{
		{
			Name: "Monster",
			Items: []Case{
				{ID: 3, Info: "ATK changes", TemporaryBanished: Forgotten, FlipFaceDown: Forgotten, TemporaryBanishedFAQs: []FAQ{}, FlipFaceDownFAQs: []FAQ{}},
				{ID: 1, Info: "Negated effects", TemporaryBanished: Forgotten, FlipFaceDown: ReferToRuling, TemporaryBanishedFAQs: []FAQ{}, FlipFaceDownFAQs: []FAQ{}},
				{
					ID: 2, Info: "Summoned this turn", TemporaryBanished: Forgotten, FlipFaceDown: Remembered,
					TemporaryBanishedFAQs: []FAQ{faq("q1", "a1"), faq("q2", "a2")},
					FlipFaceDownFAQs:      []FAQ{faq("q3", "*a3*")},
				},
			},
		},
		{Name: "Empty", Items: []Case{}},
		{
			Name: "Attack",
			Items: []Case{
				{ID: 1, Info: "Attacks declared", TemporaryBanished: Forgotten, FlipFaceDown: Remembered, TemporaryBanishedFAQs: []FAQ{faq("q", "a")}, FlipFaceDownFAQs: []FAQ{}},
			},
		},
	})
}

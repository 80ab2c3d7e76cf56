package data

import "github.com/studygate/partner-bot-go/internal/faq"

// FAQDocuments returns the built-in FAQ entries for general-intent answers,
// used when no external FAQ file is configured.
func FAQDocuments() []faq.Document {
	return []faq.Document{
		{
			ID:       "visa-x1",
			Question: "How do students apply for an X1 study visa?",
			Answer:   "After receiving the admission letter and JW202/JW201 form, the student applies at the Chinese embassy or consulate in their country with passport, photos and the physical examination form.",
			Tags:     []string{"visa", "x1", "jw202", "embassy"},
		},
		{
			ID:       "hsk-levels",
			Question: "What HSK level is required for Chinese-taught programs?",
			Answer:   "Most Chinese-taught bachelor programs require HSK 4 or above. Master and PhD programs usually require HSK 5. English-taught programs do not require HSK.",
			Tags:     []string{"hsk", "chinese", "language", "requirement"},
		},
		{
			ID:       "bank-statement",
			Question: "How much bank statement is needed for the application?",
			Answer:   "Most universities ask for a bank statement covering the first year of tuition and living costs, typically 3000 to 5000 USD. The statement should be no older than 6 months.",
			Tags:     []string{"bank", "statement", "financial", "proof"},
		},
		{
			ID:       "csc-deadline",
			Question: "When is the CSC scholarship application deadline?",
			Answer:   "CSC (Chinese Government Scholarship) applications usually open in December and close between January and April depending on the university. Apply early since quotas fill up.",
			Tags:     []string{"csc", "scholarship", "deadline", "application"},
		},
		{
			ID:       "arrival-registration",
			Question: "What must students do after arriving in China?",
			Answer:   "Within 24 hours, register accommodation with the local police (hotels do this automatically). Within 30 days, convert the X1 visa into a residence permit at the exit-entry administration.",
			Tags:     []string{"arrival", "registration", "residence", "permit"},
		},
	}
}

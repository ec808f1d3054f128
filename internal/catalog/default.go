package catalog

// Default returns the built-in screening catalog used when no catalog file
// is configured. Rubric text is data, not code; a catalog file swaps it out
// without touching the engine.
func Default() *Catalog {
	c, err := New(defaultQuestions())
	if err != nil {
		// The built-in catalog is validated by tests; a construction error
		// here is a programming bug.
		panic(err)
	}
	return c
}

func defaultQuestions() []Question {
	return []Question{
		{
			Index:  0,
			Prompt: "What is your name?",
			Kind:   KindFreeText,
		},
		{
			Index:  1,
			Prompt: "What is your state, city, and zip code?",
			Kind:   KindFreeText,
		},
		{
			Index:  2,
			Prompt: "What is your preferred contact number?",
			Kind:   KindFreeText,
			Notice: "I will ask you a few questions and score your answers based on information provided by the team. " +
				"Your answers and overall score will then be passed on to the team for follow up at your preferred number or email address. " +
				"We use this method for fairness and everyone is asked the same questions. " +
				"If your answers are within a certain score the team will contact you. " +
				"Any questions you have can be added at the end of the process and will be forwarded to the team for follow up.",
		},
		{
			Index:  3,
			Prompt: "How many years of experience in the field of communication sciences (SLP/SLPA) do you have?",
			Kind:   KindChoice,
			Options: []Option{
				{Token: "3_experienced", Label: "1+ years", Score: RubricScoreHigh},
				{Token: "3_new", Label: "Less than 1 year", Score: RubricScoreLow},
			},
		},
		{
			Index:  4,
			Prompt: "In what settings have you worked?",
			Kind:   KindFreeText,
		},
		{
			Index:  5,
			Prompt: "Do you have experience with infants and toddlers under 3?",
			Kind:   KindChoice,
			Options: []Option{
				{Token: "5_yes", Label: "Yes", Score: RubricScoreHigh},
				{Token: "5_no", Label: "No", Score: RubricScoreLow},
			},
		},
		{
			Index:  6,
			Prompt: "If you know any other languages, please share them.",
			Kind:   KindFreeText,
		},
		{
			Index: 7,
			Prompt: "It is your first session with a little 2 year old. You have done a full case review and you see that he is not speaking but appears to understand. " +
				"Parents are VERY concerned. They do not know you and have never met you before. " +
				"What is this first session in the home looking like? What do you do?",
			Kind: KindFreeText,
			Rubric: "Award 10 points for this best answer: Building Rapport - any mention of building rapport such as playing with the child, " +
				"following child's lead in play/child-led play, gaining trust, asking parents about their concerns, addressing parent concerns, " +
				"explaining what to expect, etc. The key word is rapport with how they plan to do that. " +
				"Award 5 points for this acceptable answer: Play (but no mention of child-led or following child's lead). " +
				"Award 0 points, not acceptable: Target goals right away. Have parents wait outside. Anything that is not building rapport or gaining trust.",
		},
		{
			Index: 8,
			Prompt: "This little one is not speaking. Just pretend that you knew that he would only ever speak 5 words his whole life " +
				"(we can't know this, but pretend) - and these 5 words were taught by you at the age of 2. " +
				"What 5 words would you wish that you could teach him?",
			Kind: KindFreeText,
			Rubric: "Award 10 points for this best answer: Any list of 5 core/functional words (e.g., help, want, more, done/all done, yes, no, eat, drink, hurt, again, etc.). " +
				"Award 5 points for this acceptable answer: mom/dad/caregiver's name. " +
				"Award 0 points, not acceptable: colors, shapes, numbers, any word that is NOT functional and would not allow for generalization to other tasks. " +
				"Phone number, SSN - too old for a little child who is 2 years old to learn especially if they have no other words that they speak yet.",
		},
		{
			Index: 9,
			Prompt: "This family knows and loves you now, but suppose they have an illness in the home - we don't want you to go to a home if they are sick - " +
				"and we will offer a virtual session. How are you keeping this little one engaged for a virtual 60 minute session?",
			Kind: KindFreeText,
			Rubric: "Award 10 points for this best answer: Any mention of the following: parent coaching, using materials/toys in their home, " +
				"letting parents know how to use the toys in the home to facilitate language during play, communication temptations, songs on youtube, " +
				"allowing the child to run around and learn in the home, using actual toys that I have in my home, etc. - must mention family is actively involved in the session. " +
				"Award 5 points for this acceptable answer: occasional computer games, boom cards, ultimate SLP, etc. " +
				"Award 0 points for this unacceptable answer: strapping the child into a high chair, parents waiting in another room, " +
				"no mention of parent coaching or the parents, lost look or I don't know.",
		},
		{
			Index:  10,
			Prompt: "What is your current availability?",
			Kind:   KindFreeText,
		},
		{
			Index:  11,
			Prompt: "What is your hourly pay rate?",
			Kind:   KindFreeText,
		},
		{
			Index: 12,
			Prompt: "Do you have any questions for me? I will forward them to our team and get back to you after we review your responses internally " +
				"if the parameters are met.",
			Kind: KindFreeText,
		},
	}
}

package quiz

// topicPlaceholder is replaced by the quiz topic in prompts and options.
const topicPlaceholder = "{topic}"

type questionTemplate struct {
	difficulty Difficulty
	prompt     string
	options    [OptionsPerQuestion]string
	answer     int
}

// questionTemplates is ordered; Generate keeps this order within each difficulty.
var questionTemplates = []questionTemplate{
	// Level 1: foundations
	{
		difficulty: DifficultyEasy,
		prompt:     "What is the primary goal when first studying {topic}?",
		options: [OptionsPerQuestion]string{
			"Memorize formulas without context",
			"Understand the core concepts and when to apply them",
			"Skip the fundamentals and read advanced papers",
			"Avoid hands-on practice until everything is clear",
		},
		answer: 1,
	},
	{
		difficulty: DifficultyEasy,
		prompt:     "Which source is most reliable for learning the basics of {topic}?",
		options: [OptionsPerQuestion]string{
			"Random social media threads",
			"Unverified forum answers only",
			"Official documentation and well-known textbooks",
			"Guessing from function names",
		},
		answer: 2,
	},
	{
		difficulty: DifficultyEasy,
		prompt:     "What is a sensible first step before applying {topic} to a dataset?",
		options: [OptionsPerQuestion]string{
			"Explore and understand the data",
			"Tune hyperparameters immediately",
			"Deploy a model to production",
			"Drop every outlier without looking",
		},
		answer: 0,
	},
	{
		difficulty: DifficultyEasy,
		prompt:     "How should you check your understanding of {topic}?",
		options: [OptionsPerQuestion]string{
			"Re-read the same notes",
			"Watch more videos without practicing",
			"Copy code from a tutorial",
			"Explain {topic} in your own words and implement a small example",
		},
		answer: 3,
	},
	{
		difficulty: DifficultyEasy,
		prompt:     "Which habit best supports long-term retention of {topic}?",
		options: [OptionsPerQuestion]string{
			"Cramming once before a deadline",
			"Spaced review with short daily practice",
			"Studying only when motivated",
			"Highlighting every sentence",
		},
		answer: 1,
	},

	// Level 2: application
	{
		difficulty: DifficultyMedium,
		prompt:     "When applying {topic} to a new problem, what should you establish first?",
		options: [OptionsPerQuestion]string{
			"The most complex model available",
			"A final deployment pipeline",
			"A simple baseline to compare against",
			"A custom hardware setup",
		},
		answer: 2,
	},
	{
		difficulty: DifficultyMedium,
		prompt:     "What is the most direct way to detect overfitting while working with {topic}?",
		options: [OptionsPerQuestion]string{
			"Compare training and validation performance",
			"Look only at training accuracy",
			"Increase the number of epochs",
			"Remove the validation set",
		},
		answer: 0,
	},
	{
		difficulty: DifficultyMedium,
		prompt:     "How should data be split when evaluating a {topic} solution?",
		options: [OptionsPerQuestion]string{
			"Use the test set for tuning",
			"Train and test on the same rows",
			"Fit preprocessing on all rows before splitting",
			"Hold out validation and test data never used for training",
		},
		answer: 3,
	},
	{
		difficulty: DifficultyMedium,
		prompt:     "Which practice makes experiments with {topic} reproducible?",
		options: [OptionsPerQuestion]string{
			"Changing several settings at once",
			"Fixing random seeds and versioning data and code",
			"Keeping results only in memory",
			"Running each experiment once without notes",
		},
		answer: 1,
	},
	{
		difficulty: DifficultyMedium,
		prompt:     "What does a learning curve help you diagnose for {topic}?",
		options: [OptionsPerQuestion]string{
			"The license of the dataset",
			"The speed of your network connection",
			"Whether more data or a different model capacity would help",
			"The color scheme of the plots",
		},
		answer: 2,
	},

	// Level 3: theory and edge cases
	{
		difficulty: DifficultyHard,
		prompt:     "Which issue most often produces misleadingly good results with {topic}?",
		options: [OptionsPerQuestion]string{
			"Using a fixed random seed",
			"Plotting too many charts",
			"Writing unit tests",
			"Data leakage between training and evaluation data",
		},
		answer: 3,
	},
	{
		difficulty: DifficultyHard,
		prompt:     "How do you judge whether an improvement from {topic} is meaningful?",
		options: [OptionsPerQuestion]string{
			"Check the variance across folds or seeds, not a single run",
			"Accept any higher number",
			"Compare against a different test set",
			"Trust the first run",
		},
		answer: 0,
	},
	{
		difficulty: DifficultyHard,
		prompt:     "What is the main risk when the assumptions behind {topic} do not hold for your data?",
		options: [OptionsPerQuestion]string{
			"The code will not compile",
			"Estimates and predictions can become biased or unreliable",
			"Training becomes instant",
			"Nothing changes",
		},
		answer: 1,
	},
	{
		difficulty: DifficultyHard,
		prompt:     "Under heavy class imbalance, which metric is usually more informative than accuracy for {topic}?",
		options: [OptionsPerQuestion]string{
			"Training loss alone",
			"Number of parameters",
			"Precision, recall or PR-AUC",
			"Wall-clock training time",
		},
		answer: 2,
	},
	{
		difficulty: DifficultyHard,
		prompt:     "A deployed {topic} solution degrades over time. What should you investigate first?",
		options: [OptionsPerQuestion]string{
			"The model file name",
			"The number of log lines",
			"The programming language version",
			"Distribution shift between training and production data",
		},
		answer: 3,
	},
}

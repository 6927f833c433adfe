package prompts

// samplePrompts is the builtin corpus: long-form questions that push models
// into multi-hundred-token completions so throughput numbers are meaningful.
var samplePrompts = []string{
	"Explain how blockchain technology works, and provide a real-world example of its application outside of cryptocurrency.",
	"Compare and contrast the philosophies of Nietzsche and Kant, including their views on morality and human nature.",
	"Imagine you're a travel blogger. Write a detailed post describing a week-long adventure through rural Japan.",
	"Write a fictional letter from Albert Einstein to a modern-day physicist, discussing the current state of quantum mechanics.",
	"Provide a comprehensive explanation of how transformers work in machine learning, including attention mechanisms and positional encoding.",
	"Draft a business proposal for launching a new AI-powered productivity app, including target audience, key features, and a monetization strategy.",
	"Simulate a panel discussion between Elon Musk, Marie Curie, and Sun Tzu on the topic of 'Leadership in Times of Crisis'.",
	"Describe the process of photosynthesis in depth, and explain its importance in the global carbon cycle.",
	"Analyze the impact of social media on political polarization, citing relevant studies or historical examples.",
	"Write a short science fiction story where humans discover a parallel universe that operates under different physical laws.",
	"Explain the role of the Federal Reserve in the U.S. economy and how it manages inflation and unemployment.",
	"Describe the architecture of a modern web application, from frontend to backend, including databases, APIs, and deployment.",
	"Write an essay discussing whether artificial general intelligence (AGI) poses an existential threat to humanity.",
	"Summarize the key events and consequences of the Cuban Missile Crisis, and reflect on lessons for modern diplomacy.",
	"Create a guide for beginners on how to train a custom LLM using open-source tools and publicly available datasets.",
}

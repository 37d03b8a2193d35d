package main

import "github.com/calcprep/calcprep-api/models"

// catalog is a trimmed content set; the full lesson library is maintained
// separately and loaded the same way.
var catalog = []categorySeed{
	{
		Slug:        "limits",
		Name:        "Limits",
		Description: "Limits and continuity, the foundation of calculus.",
		Icon:        "trending-up",
		Topics: []topicSeed{
			{
				Slug:        "intro-to-limits",
				Title:       "Introduction to Limits",
				Description: "What it means for a function to approach a value.",
				Body: "# Introduction to Limits\n\n" +
					"The limit of $f(x)$ as $x$ approaches $a$ is the value $f(x)$ gets arbitrarily close to, written $\\lim_{x \\to a} f(x)$.\n\n" +
					"- a limit can exist even when $f(a)$ is undefined\n" +
					"- one-sided limits must agree for the limit to exist\n\n" +
					"> A limit describes behavior near a point, never at the point.\n",
				Problems: []problemSeed{
					{
						Question:   "Evaluate $\\lim_{x \\to 2} (3x + 1)$.",
						Solution:   "Direct substitution: $3(2) + 1 = 7$.",
						Difficulty: models.DifficultyEasy,
					},
					{
						Question:   "Evaluate $\\lim_{x \\to 3} \\frac{x^2 - 9}{x - 3}$.",
						Solution:   "Factor: $\\frac{(x-3)(x+3)}{x-3} = x + 3 \\to 6$.",
						Difficulty: models.DifficultyMedium,
						IsPremium:  true,
					},
				},
				Flashcards: []flashcardSeed{
					{
						Front: "When does $\\lim_{x \\to a} f(x)$ exist?",
						Back:  "When both one-sided limits exist and are equal.",
						Hint:  "Think about approaching from each side.",
					},
				},
			},
			{
				Slug:        "limits-at-infinity",
				Title:       "Limits at Infinity",
				Description: "End behavior and horizontal asymptotes.",
				IsPremium:   true,
				Body: "# Limits at Infinity\n\n" +
					"For rational functions, compare the degrees of numerator and denominator.\n\n" +
					"```text\nlim x->inf (3x^2 + 1)/(x^2 - 5) = 3\n```\n\n" +
					"*Divide through by the highest power of x.*\n",
				Problems: []problemSeed{
					{
						Question:   "Evaluate $\\lim_{x \\to \\infty} \\frac{5x^3 - x}{2x^3 + 4}$.",
						Solution:   "Leading terms dominate: $\\frac{5}{2}$.",
						Difficulty: models.DifficultyMedium,
						IsPremium:  true,
					},
				},
				Flashcards: []flashcardSeed{
					{
						Front:     "Horizontal asymptote when degrees are equal?",
						Back:      "The ratio of the leading coefficients.",
						IsPremium: true,
					},
				},
			},
		},
	},
	{
		Slug:        "derivatives",
		Name:        "Derivatives",
		Description: "Rates of change and the rules for computing them.",
		Icon:        "activity",
		Topics: []topicSeed{
			{
				Slug:        "power-rule",
				Title:       "The Power Rule",
				Description: "Differentiating polynomials term by term.",
				Body: "# The Power Rule\n\n" +
					"If $f(x) = x^n$ then $f'(x) = nx^{n-1}$ for any real $n$.\n\n" +
					"- constants differentiate to zero\n" +
					"- sums differentiate term by term\n",
				VideoURL: "https://videos.calcprep.io/power-rule",
				Problems: []problemSeed{
					{
						Question:   "Differentiate $f(x) = 4x^5 - 2x + 7$.",
						Solution:   "$f'(x) = 20x^4 - 2$.",
						Difficulty: models.DifficultyEasy,
					},
					{
						Question:   "Differentiate $g(x) = \\sqrt{x} + \\frac{1}{x^2}$.",
						Solution:   "Rewrite as $x^{1/2} + x^{-2}$: $g'(x) = \\frac{1}{2\\sqrt{x}} - \\frac{2}{x^3}$.",
						Difficulty: models.DifficultyHard,
						IsPremium:  true,
					},
				},
				Flashcards: []flashcardSeed{
					{
						Front: "$\\frac{d}{dx} x^n$?",
						Back:  "$nx^{n-1}$",
					},
					{
						Front:     "$\\frac{d}{dx} \\sqrt{x}$?",
						Back:      "$\\frac{1}{2\\sqrt{x}}$",
						Hint:      "Rewrite the root as a power first.",
						IsPremium: true,
					},
				},
			},
		},
	},
	{
		Slug:        "integrals",
		Name:        "Integrals",
		Description: "Antiderivatives, areas, and the fundamental theorem.",
		Icon:        "layers",
		Topics: []topicSeed{
			{
				Slug:        "u-substitution",
				Title:       "U-Substitution",
				Description: "Reversing the chain rule.",
				IsPremium:   true,
				Body: "# U-Substitution\n\n" +
					"Choose $u$ so that its differential $du$ appears in the integrand.\n\n" +
					"> If the substitution does not simplify the integral, try a different u.\n",
				Problems: []problemSeed{
					{
						Question:   "Evaluate $\\int 2x e^{x^2} \\, dx$.",
						Solution:   "Let $u = x^2$, $du = 2x\\,dx$: $\\int e^u du = e^{x^2} + C$.",
						Difficulty: models.DifficultyMedium,
						IsPremium:  true,
					},
					{
						Question:   "Evaluate $\\int \\tan x \\, dx$.",
						Solution:   "Write as $\\int \\frac{\\sin x}{\\cos x} dx$ with $u = \\cos x$: $-\\ln|\\cos x| + C$.",
						Difficulty: models.DifficultyExpert,
						IsPremium:  true,
					},
				},
				Flashcards: []flashcardSeed{
					{
						Front:     "First step of u-substitution?",
						Back:      "Pick $u$ whose derivative appears in the integrand.",
						IsPremium: true,
					},
				},
			},
		},
	},
}

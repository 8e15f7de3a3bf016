package classify

// Rule maps a set of description keywords to a category with a fixed
// confidence. Rules are evaluated top to bottom; the first match wins, so the
// order of a rule slice is part of the contract.
type Rule struct {
	Category   string
	Keywords   []string
	Confidence float64
}

// incomeRules apply when the amount is zero or positive.
var incomeRules = []Rule{
	{
		Category:   "Salary",
		Keywords:   []string{"salary", "payroll", "wage"},
		Confidence: 0.9,
	},
	{
		Category:   "Freelance",
		Keywords:   []string{"freelance", "contract"},
		Confidence: 0.8,
	},
	{
		Category:   "Bonus",
		Keywords:   []string{"bonus", "commission"},
		Confidence: 0.8,
	},
	{
		Category:   "Business",
		Keywords:   []string{"business", "profit", "sale"},
		Confidence: 0.8,
	},
	{
		Category:   "Investment",
		Keywords:   []string{"investment", "dividend", "return"},
		Confidence: 0.8,
	},
}

// expenseRules apply when the amount is negative.
var expenseRules = []Rule{
	{
		Category: "Food & Dining",
		Keywords: []string{
			"restaurant", "cafe", "grocery", "food", "dining", "lunch",
			"dinner", "breakfast", "pizza", "burger", "kfc", "mcdonalds",
			"dominos", "subway", "biryani", "karahi", "daal", "roti", "naan",
			"chai", "lassi", "haleem", "nihari", "kebab", "tikka", "samosa",
			"pakora", "chaat", "kulfi", "falooda",
		},
		Confidence: 0.85,
	},
	{
		Category: "Transportation",
		Keywords: []string{
			"gas", "fuel", "uber", "taxi", "bus", "train", "parking",
			"petrol", "careem", "rickshaw", "metro", "cng", "diesel", "toll",
			"qingqi", "chingchi", "suzuki", "corolla", "civic", "mehran",
			"cultus", "alto",
		},
		Confidence: 0.8,
	},
	{
		Category: "Shopping",
		Keywords: []string{
			"store", "shop", "amazon", "purchase", "buy", "mall", "daraz",
			"market", "bazaar", "clothes", "shoes", "khaadi", "gul ahmed",
			"alkaram", "sapphire", "ideas", "centaurus", "emporium",
			"liberty", "anarkali",
		},
		Confidence: 0.75,
	},
	{
		Category: "Entertainment",
		Keywords: []string{
			"movie", "cinema", "game", "music", "concert", "netflix",
			"youtube", "spotify", "gaming", "coke studio", "lollywood",
			"bollywood", "drama", "ptv", "ary", "geo", "hum tv",
		},
		Confidence: 0.8,
	},
	{
		Category: "Bills & Utilities",
		Keywords: []string{
			"electric", "water", "internet", "phone", "rent", "mortgage",
			"insurance", "electricity", "gas bill", "wifi", "wapda", "kesc",
			"ssgc", "sngpl", "ptcl", "jazz", "telenor", "ufone", "zong",
			"nayatel", "stormfiber",
		},
		Confidence: 0.9,
	},
	{
		Category: "Healthcare",
		Keywords: []string{
			"doctor", "hospital", "medicine", "pharmacy", "clinic",
			"medical", "health", "agha khan", "shaukat khanum", "liaquat",
			"jinnah", "civil hospital", "pims", "services hospital",
		},
		Confidence: 0.85,
	},
	{
		Category: "Education",
		Keywords: []string{
			"school", "college", "university", "tuition", "books", "fees",
			"education", "lums", "iba", "nust", "fast", "comsats", "uet",
			"punjab university", "karachi university",
		},
		Confidence: 0.85,
	},
}

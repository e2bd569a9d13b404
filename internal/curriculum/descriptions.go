package curriculum

// descriptions holds grade-specific summaries keyed by topic then grade.
var descriptions = map[Topic]map[GradeLevel]string{
	Counting: {
		Kindergarten: "Count objects from 1 to 20",
		Grade1:       "Count objects from 1 to 100 and skip counting by 2s, 5s, and 10s",
	},
	Addition: {
		Kindergarten: "Add numbers within 10",
		Grade1:       "Add numbers within 20",
		Grade2:       "Add two-digit numbers with regrouping",
		Grade3:       "Add three-digit numbers with regrouping",
		Grade4:       "Add multi-digit numbers including decimals",
	},
	Subtraction: {
		Kindergarten: "Subtract numbers within 10",
		Grade1:       "Subtract numbers within 20",
		Grade2:       "Subtract two-digit numbers with regrouping",
		Grade3:       "Subtract three-digit numbers with regrouping",
	},
	Multiplication: {
		Grade2: "Introduction to multiplication with arrays",
		Grade3: "Multiply single-digit numbers (times tables up to 10)",
		Grade4: "Multiply multi-digit numbers",
		Grade5: "Multiply multi-digit numbers and decimals",
	},
	Division: {
		Grade3: "Introduction to division with simple facts",
		Grade4: "Divide multi-digit numbers by single-digit divisors",
		Grade5: "Divide multi-digit numbers by multi-digit divisors",
	},
	Fractions: {
		Grade3: "Introduction to fractions: halves, thirds, fourths",
		Grade4: "Add and subtract fractions with like denominators",
		Grade5: "Add and subtract fractions with unlike denominators",
	},
	Decimals: {
		Grade4: "Introduction to decimals: tenths and hundredths",
		Grade5: "Add, subtract, multiply, and divide decimals",
	},
	Geometry: {
		Kindergarten: "Identify basic shapes: circle, square, triangle",
		Grade1:       "Identify and describe 2D and 3D shapes",
		Grade2:       "Identify shapes and their attributes",
		Grade3:       "Calculate perimeter of shapes",
		Grade4:       "Calculate area and perimeter",
		Grade5:       "Calculate volume and surface area",
	},
	Measurement: {
		Grade1: "Compare and order objects by length",
		Grade2: "Measure length using standard units",
		Grade4: "Convert between units of measurement",
		Grade5: "Convert between metric and customary units",
	},
	WordProblems: {
		Grade2: "Simple word problems with addition and subtraction",
		Grade3: "Word problems with multiplication and division",
		Grade4: "Multi-step word problems",
		Grade5: "Complex multi-step word problems",
	},
	Patterns: {
		Kindergarten: "Recognize and extend simple patterns (AB, ABC)",
		Grade1:       "Create and extend number patterns",
	},
	Time: {
		Grade1: "Tell time to the hour and half hour",
		Grade2: "Tell time to the nearest 5 minutes",
		Grade3: "Tell time to the nearest minute and calculate elapsed time",
	},
	Money: {
		Grade2: "Identify coins and count money",
		Grade3: "Count money and make change",
	},
}

// DescriptionFor returns the grade-specific description of a topic, or a
// generic "<Topic> concepts" line when none is recorded.
func DescriptionFor(t Topic, g GradeLevel) string {
	if byGrade, ok := descriptions[t]; ok {
		if d, ok := byGrade[g]; ok {
			return d
		}
	}
	return t.DisplayName() + " concepts"
}

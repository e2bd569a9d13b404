package content

import (
	"fmt"
	"strings"

	"github.com/abhisek/mathgen/internal/curriculum"
)

// Params identifies what to generate.
type Params struct {
	Grade       curriculum.GradeLevel
	Topic       curriculum.Topic
	NumProblems int
	Difficulty  int
}

type persona struct {
	role      string
	goal      string
	backstory string
}

func (p persona) system() string {
	return fmt.Sprintf("You are the %s.\n\nGoal: %s\n\n%s", p.role, p.goal, p.backstory)
}

func conceptExpert(topic, grade string) persona {
	return persona{
		role: "Math Concept Expert",
		goal: fmt.Sprintf("Provide clear, age-appropriate explanations of %s concepts for %s students.", topic, grade),
		backstory: fmt.Sprintf("You are an experienced elementary school math teacher who specializes in teaching %s "+
			"to young students. You have a gift for making complex mathematical concepts simple and engaging. "+
			"You understand the developmental stages of children in %s and adapt your explanations accordingly. "+
			"You always use encouraging language and provide relatable examples that children can understand.", topic, grade),
	}
}

func problemGenerator(topic, grade string) persona {
	return persona{
		role: "Math Problem Generator",
		goal: fmt.Sprintf("Generate engaging, educational math problems about %s that are appropriate for %s students.", topic, grade),
		backstory: fmt.Sprintf("You are a curriculum designer who creates math worksheets and practice problems for "+
			"elementary school students. You specialize in creating problems for %s students focusing on %s. "+
			"Your problems are creative, engaging, and progressively challenging while remaining age-appropriate. "+
			"You include real-world scenarios that children can relate to, such as toys, animals, food, and everyday activities.",
			grade, topic),
	}
}

func problemReviewer(grade string) persona {
	return persona{
		role: "Math Problem Reviewer",
		goal: fmt.Sprintf("Review and validate math problems to ensure they are accurate, age-appropriate for %s, and educationally sound.", grade),
		backstory: fmt.Sprintf("You are a senior educational consultant who specializes in elementary math education. "+
			"You review math problems to ensure they meet curriculum standards for %s students. You check for "+
			"mathematical accuracy, appropriate difficulty level, clear wording, and educational value. You provide "+
			"constructive feedback to improve problems when necessary.", grade),
	}
}

func hintProvider(grade string) persona {
	return persona{
		role: "Math Hint Provider",
		goal: fmt.Sprintf("Create helpful, scaffolded hints and step-by-step explanations that guide %s students "+
			"to solve math problems without giving away the answer directly.", grade),
		backstory: fmt.Sprintf("You are a patient math tutor who excels at helping struggling students understand math "+
			"concepts. You create hints that break down problems into manageable steps for %s students. Your hints "+
			"encourage students to think critically while providing just enough guidance to keep them from getting "+
			"frustrated. You use visual descriptions and relatable examples to help children understand.", grade),
	}
}

// systemPrompt picks the persona that answers a kind of request.
func systemPrompt(k Kind, p Params) string {
	topic, grade := p.Topic.Label(), p.Grade.Label()
	switch k {
	case KindProblems:
		return problemGenerator(topic, grade).system()
	case KindReview:
		return problemReviewer(grade).system()
	case KindHints:
		return hintProvider(grade).system()
	default:
		return conceptExpert(topic, grade).system()
	}
}

// taskPrompt is the instruction for a kind, without upstream context.
func taskPrompt(k Kind, p Params) (task, expected string) {
	topic, grade := p.Topic.Label(), p.Grade.Label()

	switch k {
	case KindExplanation:
		task = fmt.Sprintf(`Explain the math concept of %s for %s students.

Your explanation should include:
1. A simple, age-appropriate definition
2. Why this concept is important
3. Real-world examples children can relate to
4. Common misconceptions to avoid
5. Tips for understanding the concept better

Keep the language simple and engaging for young learners.`, topic, grade)
		expected = fmt.Sprintf("A clear, engaging explanation of %s suitable for %s students, "+
			"including definition, importance, examples, and tips.", topic, grade)

	case KindProblems:
		task = fmt.Sprintf(`Generate %d math problems about %s for %s students at difficulty level %d (out of 5).

For each problem, provide:
1. The question (clear and age-appropriate)
2. The correct answer
3. A brief explanation of how to solve it

Guidelines:
- Use simple, clear language
- Include relatable scenarios (toys, animals, food, games)
- Vary the problem types within the topic
- Ensure mathematical accuracy
- Make problems progressively slightly harder

Format each problem as:
Problem [number]:
Question: [question text]
Answer: [answer]
Explanation: [step-by-step solution]`, p.NumProblems, topic, grade, p.Difficulty)
		expected = fmt.Sprintf("%d well-formatted math problems about %s appropriate for %s students, "+
			"each with question, answer, and explanation.", p.NumProblems, topic, grade)

	case KindReview:
		task = fmt.Sprintf(`Review the generated %s problems for %s students.

For each problem, verify:
1. Mathematical accuracy - Is the answer correct?
2. Age appropriateness - Is it suitable for %s?
3. Clarity - Is the question clearly worded?
4. Difficulty - Is it at the right level?
5. Educational value - Does it help learn the concept?

Provide:
- Overall quality assessment (pass/needs revision)
- Specific feedback for any problems that need improvement
- Suggested corrections if errors are found`, topic, grade, grade)
		expected = fmt.Sprintf("A detailed review of the %s problems, including quality assessment, "+
			"accuracy verification, and improvement suggestions.", topic)

	case KindHints:
		task = fmt.Sprintf(`Create helpful hints for the %s problems designed for %s students.

For each problem, create 2-3 hints that:
1. Guide students toward the solution without giving it away
2. Break down the problem into smaller steps
3. Use simple language appropriate for %s
4. Encourage critical thinking
5. Build confidence

Hints should be progressive:
- Hint 1: A gentle nudge in the right direction
- Hint 2: A more specific strategy
- Hint 3: A detailed step to help stuck students

Label each group "Problem [number]:" and each hint "Hint [number]:".`, topic, grade, grade)
		expected = fmt.Sprintf("2-3 progressive hints for each %s problem, designed to help %s students "+
			"solve problems independently.", topic, grade)

	case KindWorksheet:
		task = fmt.Sprintf(`Compile a complete %s worksheet for %s students.

The worksheet should include:
1. A title and brief introduction
2. A quick concept review section
3. The practice problems (organized by difficulty)
4. An answer key section
5. A "Challenge Yourself" bonus section

Format the worksheet in a clear, printable format with:
- Clear section headers
- Numbered problems
- Space indicators for student work
- Encouraging messages throughout

Separate sections with a blank line.`, topic, grade)
		expected = fmt.Sprintf("A complete, well-formatted %s worksheet for %s students, "+
			"including introduction, problems, and answer key.", topic, grade)
	}
	return task, expected
}

// userMessage combines the task, upstream outputs in assembly order and
// the expected output description.
func userMessage(k Kind, p Params, deps []Kind, upstream Outputs) string {
	task, expected := taskPrompt(k, p)

	var b strings.Builder
	b.WriteString(task)

	if len(deps) > 0 {
		b.WriteString("\n\nContext from earlier steps:")
		for _, d := range deps {
			fmt.Fprintf(&b, "\n\n### %s\n%s", d.contextLabel(), strings.TrimSpace(upstream.Get(d)))
		}
	}

	fmt.Fprintf(&b, "\n\nExpected output: %s", expected)
	return b.String()
}

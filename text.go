package main

import (
	"fmt"

	"github.com/Edgar-mwila/portfolio/internal/content"
)

var (
	Intro = `A results-driven developer with expertise in building scalable web and mobile applications.
	Proficient in both frontend and backend development, with a passion for creating seamless user experiences.`

	AboutMe = []string{
		`I am a self-motivated and eager-spirited individual who is always pushing myself towards better.
		I love to learn and share knowledge, making me a valuable asset to any team.`,
		`As a resourceful student skilled in programming, debugging, and software development, I offer a
		dynamic personality and a willingness to learn. My presence has been described as pleasant and
		positive by the majority of people I have interacted with.`,
		`My morals are as unquestionable as my caliber. My character as sound as can be. I would be a great
		asset for any software firm looking for a dedicated and skilled developer.`,
	}

	ProjectCPL = `A comprehensive sports league management website for Copperbelt University's Premier League
	with fixtures, results, team statistics, and player profiles. Features real-time updates and responsive design.`

	ProjectExpenseTracker = `A personal finance application that helps users track expenses, set budgets, and
	visualize spending patterns through interactive charts. Features include expense categorization and monthly reports.`

	ProjectDSA = `A collection of implemented data structures and algorithms with explanations and visualizations.
	Includes sorting algorithms, search techniques, and complex data structures with practical applications.`

	ProjectHabitHub = `An Android application designed to help users track and maintain healthy habits. Features
	include goal setting, streak tracking, reminders, and progress visualization to motivate consistent behavior.`

	ProjectRent = `A comprehensive rental property management platform connecting landlords and tenants. Features
	include property listings, tenant application processing, rent payment tracking, and maintenance request management.`

	ProjectImageClassifier = `A machine learning application that classifies images into predefined categories
	using convolutional neural networks. Trained on a diverse dataset to recognize various objects and scenes
	with high accuracy.`
)

// defaultPortfolio is the site copy served when no content file is set.
func defaultPortfolio() content.Portfolio {
	return content.Portfolio{
		Profile: content.Profile{
			Name:       "Edgar Mwila",
			Headline:   "Full Stack Developer | Web & Mobile Applications",
			Intro:      Intro,
			About:      AboutMe,
			Photo:      "/images/professional.jpg",
			Experience: "3+ Years",
			Location:   "Kafue, Lusaka, Zambia",
			Email:      "edgarmwila84@gmail.com",
			Phone:      "+260 779846020",
			Freelance:  "Available",
		},
		Nav: []content.NavLink{
			{ID: "home", Label: "Home"},
			{ID: "about", Label: "About"},
			{ID: "experience", Label: "Experience"},
			{ID: "projects", Label: "Projects"},
			{ID: "skills", Label: "Skills"},
			{ID: "education", Label: "Education"},
			{ID: "contact", Label: "Contact"},
		},
		Experience: []content.Experience{
			{
				Role:     "Full Stack Developer",
				Company:  "ByteNode",
				Location: "Lusaka, Zambia",
				Period:   "10/2024 - Present",
				Description: "Working on assigned projects as a front-end, back-end, or full-stack developer. " +
					"Developing scalable web applications using modern frameworks and technologies. " +
					"Collaborating with cross-functional teams to deliver high-quality software solutions.",
			},
			{
				Role:     "Front-End Developer",
				Company:  "Alpha-C-Technologies",
				Location: "Kitwe, Copperbelt",
				Period:   "01/2025 - Present",
				Description: "Developing front-end components and interfaces for assigned projects. " +
					"Implementing responsive designs and ensuring cross-browser compatibility. " +
					"Working with modern JavaScript frameworks to create interactive user experiences.",
			},
			{
				Role:     "Front-End Developer",
				Company:  "Weiser Agencies",
				Location: "Panama, Panama",
				Period:   "05/2024 - 09/2024",
				Description: "Developed front-end applications and collaborated with the back-end team to solve " +
					"technical challenges and drive solutions. Implemented responsive designs and optimized web " +
					"performance. Worked with React.js and Next.js to build modern web applications.",
			},
			{
				Role:     "Social Media Intern",
				Company:  "Uniplexity AI",
				Location: "Kitwe, Copperbelt",
				Period:   "02/2025 - Present",
				Description: "Managing social media accounts and engagement strategies for Uniplexity AI. " +
					"Creating and scheduling content, analyzing performance metrics, and implementing growth " +
					"strategies. Collaborating with the marketing team to develop effective social media campaigns.",
			},
		},
		Projects: []content.Project{
			{
				Slug:        "cbu-premier-league",
				Title:       "CBU Premier League Website",
				Stack:       []string{"React.js", "Node.js", "MongoDB"},
				Description: ProjectCPL,
				Images:      gallery("/images/cpl/%d.png", 6),
			},
			{
				Slug:        "expense-tracker",
				Title:       "Expense Tracker",
				Stack:       []string{"React.js", "Firebase", "Chart.js"},
				Description: ProjectExpenseTracker,
				Images:      gallery("/images/expense-tracker/%d.png", 5),
			},
			{
				Slug:        "learning-dsa",
				Title:       "Learning Data Structures and Algorithms",
				Stack:       []string{"JavaScript", "C++", "Python"},
				Description: ProjectDSA,
				Images:      gallery("/images/learning-dsa/%d.png", 7),
			},
			{
				Slug:        "habit-hub",
				Title:       "Habit Hub",
				Stack:       []string{"Android", "Kotlin", "Room Database"},
				Description: ProjectHabitHub,
				Images:      gallery("/images/habit-hub/%d.jpg", 7),
			},
			{
				Slug:        "my-rent-solutions",
				Title:       "My Rent Solutions",
				Stack:       []string{"Next.js", "Express", "PostgreSQL"},
				Description: ProjectRent,
				Images:      gallery("/images/my-rent-solutions/%d.png", 2),
			},
			{
				Slug:        "image-classifier",
				Title:       "Image Classifier",
				Stack:       []string{"Python", "TensorFlow", "Keras"},
				Description: ProjectImageClassifier,
				Images:      gallery("/images/image-classifier/%d.jpg", 3),
			},
		},
		Skills: []content.SkillGroup{
			{
				Title: "Technical Skills",
				Skills: []content.Skill{
					{Name: "JavaScript/TypeScript", Level: 90},
					{Name: "React.js/Next.js", Level: 85},
					{Name: "Node.js", Level: 80},
					{Name: "C++", Level: 75},
				},
			},
			{
				Title: "Professional Skills",
				Skills: []content.Skill{
					{Name: "Problem Solving", Level: 95},
					{Name: "Team Collaboration", Level: 90},
					{Name: "Communication", Level: 85},
					{Name: "Leadership", Level: 80},
				},
			},
		},
		Tools: []string{
			"React", "Next.js", "Node.js", "JavaScript", "TypeScript", "HTML5", "CSS3", "PostgreSQL",
			"MySQL", "Firebase", "Supabase", "Git", "REST API", "WebSockets", "Spring Framework", "C++",
		},
		Education: []content.Education{
			{
				Title:       "Bachelor of Science in Computer Science",
				Institution: "Copperbelt University",
				Location:    "Kitwe, Copperbelt",
				Period:      "2022 - 2026 (Expected)",
				Description: "Currently pursuing a degree in Computer Science with a focus on software " +
					"development and programming. Actively participating in various academic projects " +
					"and extracurricular activities.",
			},
			{
				Title:       "General Certificate of Education (GCE)",
				Institution: "Naboye Secondary School",
				Location:    "Kafue, Lusaka",
				Period:      "Graduated: November 2021",
				Description: "Passed with distinction in multiple subjects including English Language, " +
					"Mathematics, Additional Mathematics, Biology, Science, and Principles of Accounts. " +
					"Was the best performing pupil academically and held various leadership roles.",
				Achievements: []string{
					"School Debate Disciplinarian (2021)",
					"Project Supervisor of Junior Engineers Technicians Scientist (JETS) Club (2021)",
					"President of Chess Club (2021)",
					"Secretary of Future Life Now (FLN) Club (2021)",
					"School Preventive Maintenance Prefect (2021)",
					"Senior Prefect for various clubs",
				},
			},
		},
		Socials: []content.Social{
			{Label: "LinkedIn", URL: "https://www.linkedin.com/in/edgar-mwila-linkdin"},
			{Label: "GitHub", URL: "https://github.com/Edgar-mwila"},
		},
	}
}

// gallery expands a numbered image pattern into n paths starting at 1.
func gallery(pattern string, n int) []string {
	images := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		images = append(images, fmt.Sprintf(pattern, i))
	}

	return images
}

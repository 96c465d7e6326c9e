package vocabulary

import "atsresume/internal/types"

// DefaultVersion identifies the built-in dictionaries.
const DefaultVersion = "builtin-1"

// Default returns the built-in vocabulary. Each call returns a fresh copy.
func Default() *Vocabulary {
	return &Vocabulary{
		Version: DefaultVersion,
		TechnicalSkills: []Category{
			{Name: "programming_languages", Skills: []string{
				"Python", "Java", "JavaScript", "C++", "C#", "Ruby", "PHP", "Swift",
				"Kotlin", "Go", "Rust", "TypeScript", "R", "MATLAB", "Scala", "Perl",
			}},
			{Name: "web_technologies", Skills: []string{
				"HTML", "CSS", "React", "Angular", "Vue.js", "Node.js", "Django",
				"Flask", "Spring", "ASP.NET", "Express.js", "Next.js", "Bootstrap",
				"Tailwind CSS", "jQuery", "Redux", "GraphQL", "REST API", "AJAX",
			}},
			{Name: "databases", Skills: []string{
				"MySQL", "PostgreSQL", "MongoDB", "Oracle", "SQL Server", "SQLite",
				"Redis", "Cassandra", "DynamoDB", "Firebase", "MariaDB", "Elasticsearch",
			}},
			{Name: "cloud_platforms", Skills: []string{
				"AWS", "Azure", "Google Cloud", "GCP", "Heroku", "DigitalOcean",
				"IBM Cloud", "Oracle Cloud", "Kubernetes", "Docker", "Jenkins",
			}},
			{Name: "data_science", Skills: []string{
				"Machine Learning", "Deep Learning", "TensorFlow", "PyTorch", "Keras",
				"Scikit-learn", "Pandas", "NumPy", "Matplotlib", "Seaborn", "NLP",
				"Computer Vision", "OpenCV", "NLTK", "SpaCy", "Data Analysis",
				"Statistics", "Data Visualization", "Big Data", "Hadoop", "Spark",
			}},
			{Name: "tools", Skills: []string{
				"Git", "GitHub", "GitLab", "Bitbucket", "JIRA", "Confluence",
				"Trello", "Slack", "VS Code", "IntelliJ", "Eclipse", "PyCharm",
				"Postman", "Swagger", "Selenium", "JUnit", "pytest", "Mocha",
			}},
			{Name: "methodologies", Skills: []string{
				"Agile", "Scrum", "Kanban", "DevOps", "CI/CD", "TDD", "BDD",
				"Microservices", "RESTful", "API Development", "MVC", "MVVM",
			}},
		},
		SoftSkills: []string{
			"Leadership", "Communication", "Teamwork", "Problem Solving",
			"Critical Thinking", "Time Management", "Adaptability", "Collaboration",
			"Project Management", "Analytical", "Creative", "Detail-oriented",
			"Self-motivated", "Multitasking", "Decision Making", "Negotiation",
			"Presentation", "Interpersonal", "Organizational", "Strategic Planning",
		},
		EducationKeywords: []string{
			"Bachelor", "Master", "PhD", "Doctorate", "B.Tech", "M.Tech", "B.S.",
			"M.S.", "MBA", "B.E.", "M.E.", "BCA", "MCA", "Diploma", "Associate",
			"Computer Science", "Engineering", "Information Technology", "Software",
			"University", "College", "Institute", "School", "Degree", "GPA", "CGPA",
		},
		ExperienceKeywords: []string{
			"experience", "work", "employment", "position", "role", "job",
			"intern", "internship", "developer", "engineer", "analyst", "manager",
			"consultant", "specialist", "coordinator", "lead", "senior", "junior",
			"associate", "principal", "architect", "administrator", "designer",
		},
		SectionHeaders: []Section{
			{Name: "contact", Synonyms: []string{"contact", "personal information", "personal details"}},
			{Name: "summary", Synonyms: []string{"summary", "objective", "profile", "about", "professional summary"}},
			{Name: "experience", Synonyms: []string{"experience", "work experience", "employment", "work history", "professional experience"}},
			{Name: "education", Synonyms: []string{"education", "academic", "qualification", "educational background"}},
			{Name: "skills", Synonyms: []string{"skills", "technical skills", "core competencies", "expertise", "technologies"}},
			{Name: "projects", Synonyms: []string{"projects", "academic projects", "personal projects"}},
			{Name: "certifications", Synonyms: []string{"certifications", "certificates", "licenses", "credentials"}},
			{Name: "achievements", Synonyms: []string{"achievements", "awards", "honors", "accomplishments"}},
		},
		TitleKeywords: []string{
			"Engineer", "Developer", "Manager", "Lead", "Analyst", "Consultant",
			"Architect", "Director", "Specialist", "Coordinator", "Executive",
		},
		ActionVerbs: defaultActionVerbs(),
		StopWords: []string{
			"a", "an", "and", "are", "as", "at", "be", "but", "by", "for", "if", "in", "into", "is", "it",
			"no", "not", "of", "on", "or", "such", "that", "the", "their", "then", "there", "these",
			"they", "this", "to", "was", "will", "with", "who", "whom", "whose", "which", "where", "when",
		},
		ATSPitfalls: []string{
			"graphics", "images", "icons", "columns", "tables", "headers", "footers", "boxes",
			"shading", "progress bars", "infographics", "fancy fonts",
		},
		Weights: map[string]float64{
			types.ScoreKeywordMatch:        0.25,
			types.ScoreSkillsMatch:         0.20,
			types.ScoreExperienceRelevance: 0.15,
			types.ScoreImpact:              0.15,
			types.ScoreEducation:           0.10,
			types.ScoreFormatATSFriendly:   0.10,
			types.ScoreCompleteness:        0.05,
		},
		Thresholds: Thresholds{Excellent: 80, Good: 60, Fair: 40},
		Roles: []RoleProfile{
			{Name: "Full Stack Developer", Skills: []string{"html", "css", "javascript", "react", "node", "database", "git", "api", "typescript", "frontend", "backend"}},
			{Name: "Data Scientist", Skills: []string{"python", "statistics", "machine learning", "sql", "pandas", "numpy", "scikit-learn", "data visualization", "r", "mathematics"}},
			{Name: "DevOps Engineer", Skills: []string{"docker", "kubernetes", "aws", "ci/cd", "linux", "terraform", "jenkins", "cloud", "azure", "ansible", "automation"}},
			{Name: "Product Manager", Skills: []string{"agile", "scrum", "strategy", "roadmap", "stakeholder", "user experience", "market research", "analytics", "product lifecycle"}},
			{Name: "Cybersecurity Analyst", Skills: []string{"security", "network", "firewall", "penetration testing", "encryption", "compliance", "cyber", "vulnerability", "incident response"}},
		},
		SeniorKeywords: []string{"senior", "lead", "manager", "director", "principal", "head", "vp", "executive"},
		MidKeywords:    []string{"middle", "intermediate", "assoc"},
		SeniorityRanks: []Rank{
			{Keyword: "junior", Level: 1},
			{Keyword: "engineer", Level: 2},
			{Keyword: "developer", Level: 2},
			{Keyword: "senior", Level: 3},
			{Keyword: "lead", Level: 4},
			{Keyword: "manager", Level: 5},
			{Keyword: "director", Level: 6},
		},
	}
}

func defaultActionVerbs() []string {
	return []string{
		"Achieved", "Adapted", "Administered", "Advised", "Analyzed", "Arranged", "Assessed", "Assisted",
		"Attained", "Budgeted", "Built", "Calculated", "Centralized", "Collaborated", "Communicated", "Completed",
		"Composed", "Condensed", "Conducted", "Constructed", "Consulted", "Contracted", "Contributed", "Coordinated",
		"Created", "Cultivated", "Debugged", "Decided", "Defined", "Delegated", "Delivered", "Designed",
		"Detected", "Developed", "Devised", "Directed", "Discovered", "Distributed", "Documented", "Drafted",
		"Earned", "Edited", "Educated", "Eliminated", "Enabled", "Enacted", "Encouraged", "Engineered",
		"Enhanced", "Established", "Evaluated", "Executed", "Expanded", "Expedited", "Facilitated", "Finalized",
		"Forecasted", "Formulated", "Generated", "Guided", "Identified", "Implemented", "Improved", "Increased",
		"Influenced", "Informed", "Initiated", "Inspected", "Installed", "Instituted", "Instructed", "Integrated",
		"Interpreted", "Introduced", "Invented", "Investigated", "Launched", "Led", "Maintained", "Managed",
		"Marketed", "Measured", "Mediated", "Mentored", "Merged", "Minimized", "Modeled", "Moderated",
		"Monitored", "Motivated", "Negotiated", "Operated", "Optimized", "Orchestrated", "Organized", "Oversaw",
		"Performed", "Pioneered", "Planned", "Prepared", "Presented", "Prioritized", "Processed", "Produced",
		"Programmed", "Projected", "Promoted", "Proposed", "Provided", "Published", "Purchased", "Recommended",
		"Reconciled", "Recorded", "Recruited", "Redesigned", "Reduced", "Refined", "Regulated", "Rehabilitated",
		"Remodeled", "Repaired", "Represented", "Researched", "Resolved", "Restored", "Restructured", "Retrieved",
		"Reviewed", "Revised", "Scheduled", "Screened", "Selected", "Served", "Simplified", "Solved",
		"Sparked", "Spearheaded", "Standardized", "Stimulated", "Streamlined", "Summarized", "Supervised", "Supported",
		"Surveyed", "Synthesized", "Systematized", "Tabulated", "Taught", "Tested", "Traced", "Trained",
		"Transformed", "Translated", "Updated", "Upgraded", "Validated", "Verified", "Visualized",
	}
}

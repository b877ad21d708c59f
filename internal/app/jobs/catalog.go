package jobs

import "github.com/PabloGalante/career-companion/internal/domain"

// DefaultCatalog returns the built-in sample listings used while no real job
// board is connected.
func DefaultCatalog() []domain.JobListing {
	return []domain.JobListing{
		{
			Title:       "Senior Frontend Developer (React)",
			Company:     "TechSolutions ZA",
			Location:    "Cape Town, Western Cape",
			Description: "Join our innovative team to build cutting-edge web applications using React and TypeScript. 5+ years of experience required.",
			URL:         "#",
		},
		{
			Title:       "Junior Software Engineer (Python)",
			Company:     "Data Insights Pty Ltd",
			Location:    "Johannesburg, Gauteng",
			Description: "An exciting opportunity for a recent graduate to work on data processing pipelines and machine learning models.",
			URL:         "#",
		},
		{
			Title:       "UX/UI Designer",
			Company:     "CreativeWeb",
			Location:    "Durban, KwaZulu-Natal",
			Description: "We are looking for a talented designer to create amazing user experiences. A strong portfolio is a must.",
			URL:         "#",
		},
		{
			Title:       "Digital Marketing Specialist",
			Company:     "MarketPro",
			Location:    "Cape Town, Western Cape",
			Description: "Drive our digital marketing campaigns across various channels. Experience with SEO, SEM, and social media is essential.",
			URL:         "#",
		},
		{
			Title:       "Cloud Engineer (AWS)",
			Company:     "InfraCloud SA",
			Location:    "Remote",
			Description: "Manage and scale our cloud infrastructure on AWS. Strong knowledge of EC2, S3, and Lambda is required.",
			URL:         "#",
		},
		{
			Title:       "Customer Support Representative",
			Company:     "HelpDesk Heroes",
			Location:    "Johannesburg, Gauteng",
			Description: "Provide top-notch support to our customers. Excellent communication skills and a friendly attitude are key.",
			URL:         "#",
		},
		{
			Title:       "Project Manager",
			Company:     "BuildIt Right",
			Location:    "Pretoria, Gauteng",
			Description: "Lead our construction projects from start to finish. A degree in civil engineering or a related field is preferred.",
			URL:         "#",
		},
		{
			Title:       "Data Analyst",
			Company:     "NumberCrunchers",
			Location:    "Cape Town, Western Cape",
			Description: "Analyze large datasets to provide actionable insights. Proficiency in SQL and data visualization tools is required.",
			URL:         "#",
		},
	}
}

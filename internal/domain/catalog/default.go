package catalog

import "sync"

var (
	defaultOnce sync.Once
	defaultCat  *Catalog
)

// Default returns the built-in catalog. It is built once and shared.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := New(defaultDomains()...)
		if err != nil {
			panic("catalog: invalid built-in domains: " + err.Error())
		}
		defaultCat = c
	})
	return defaultCat
}

func defaultDomains() []Domain {
	return []Domain{
		{
			ID:          ArtisticCreativity,
			Name:        "Artistic Creativity",
			Description: "Expressing ideas through drawing, painting, color and making things.",
			Keywords:    []string{"drawing", "painting", "colors", "creative", "art", "design", "imagination"},
			Indicators:  []string{"uses many colors", "invents original pictures", "enjoys crafts and building", "notices visual detail"},
			Activities:  []string{"Drawing and sketching", "Painting with watercolors", "Clay modeling", "Collage making", "Origami"},
			Careers:     []string{"Artist", "Graphic Designer", "Architect", "Illustrator", "Animator"},
		},
		{
			ID:          MusicalRhythm,
			Name:        "Musical Rhythm",
			Description: "Sensitivity to sound, beat and melody.",
			Keywords:    []string{"music", "rhythm", "sound", "singing", "dancing", "melody", "beat"},
			Indicators:  []string{"keeps a steady beat", "hums or sings often", "remembers melodies", "moves to music"},
			Activities:  []string{"Rhythm games", "Singing songs", "Playing simple instruments", "Dance and movement to music", "Music listening sessions"},
			Careers:     []string{"Musician", "Composer", "Music Teacher", "Sound Engineer", "Dancer"},
		},
		{
			ID:          ScientificDiscovery,
			Name:        "Scientific Discovery",
			Description: "Curiosity about how the natural world works.",
			Keywords:    []string{"experiment", "discovery", "science", "nature", "observation", "curiosity"},
			Indicators:  []string{"asks why and how", "collects things from nature", "likes to test ideas", "observes carefully"},
			Activities:  []string{"Simple science experiments", "Nature walks and observation", "Bug and plant collecting", "Magnifying glass exploration", "Weather tracking"},
			Careers:     []string{"Scientist", "Doctor", "Biologist", "Environmental Researcher", "Astronomer"},
		},
		{
			ID:          SportsMovement,
			Name:        "Sports & Movement",
			Description: "Coordination, physical energy and enjoyment of movement.",
			Keywords:    []string{"movement", "sports", "physical", "coordination", "team", "exercise"},
			Indicators:  []string{"good balance", "enjoys running and climbing", "picks up physical skills quickly", "competitive in games"},
			Activities:  []string{"Ball games", "Obstacle courses", "Swimming", "Gymnastics", "Team sports"},
			Careers:     []string{"Athlete", "Coach", "Physical Therapist", "Sports Scientist", "Fitness Instructor"},
		},
		{
			ID:          SocialLeadership,
			Name:        "Social Leadership",
			Description: "Organizing, helping and influencing others.",
			Keywords:    []string{"leadership", "social", "communication", "teamwork", "friends", "group"},
			Indicators:  []string{"organizes games with friends", "helps resolve conflicts", "shows empathy", "takes initiative in groups"},
			Activities:  []string{"Group projects", "Role-playing games", "Helping younger children", "Classroom helper roles", "Cooperative board games"},
			Careers:     []string{"Teacher", "Manager", "Counselor", "Entrepreneur", "Community Organizer"},
		},
		{
			ID:          LanguageCommunication,
			Name:        "Language & Communication",
			Description: "Using words to tell stories, explain and persuade.",
			Keywords:    []string{"language", "words", "reading", "writing", "communication", "story"},
			Indicators:  []string{"rich vocabulary", "loves stories", "tells detailed narratives", "plays with rhymes"},
			Activities:  []string{"Storytelling", "Reading together", "Word games", "Journal writing", "Puppet shows"},
			Careers:     []string{"Writer", "Journalist", "Lawyer", "Translator", "Teacher"},
		},
		{
			ID:          LogicalMathematics,
			Name:        "Logical Mathematics",
			Description: "Reasoning with numbers, patterns and puzzles.",
			Keywords:    []string{"logic", "math", "numbers", "puzzle", "pattern", "problem", "thinking"},
			Indicators:  []string{"spots patterns", "enjoys counting", "solves puzzles persistently", "asks for rules and reasons"},
			Activities:  []string{"Puzzle solving", "Counting games", "Pattern recognition games", "Building blocks challenges", "Strategy board games"},
			Careers:     []string{"Mathematician", "Engineer", "Data Scientist", "Accountant", "Software Developer"},
		},
		{
			ID:          TechnologyInnovation,
			Name:        "Technology & Innovation",
			Description: "Building, tinkering and inventing with tools and machines.",
			Keywords:    []string{"technology", "coding", "robot", "computer", "engineering", "invent"},
			Indicators:  []string{"takes things apart", "curious about machines", "follows step-by-step instructions", "invents new gadgets"},
			Activities:  []string{"Coding games for kids", "Robot building kits", "Simple circuits", "Building with construction sets", "Invention challenges"},
			Careers:     []string{"Software Engineer", "Robotics Engineer", "Inventor", "Game Developer", "Product Designer"},
		},
	}
}

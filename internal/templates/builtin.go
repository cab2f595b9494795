package templates

import "github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/sections"

// Default returns the catalog shipped with the site.
func Default() *Catalog {
	return MustNewCatalog(builtinBlueprints()...)
}

func builtinBlueprints() []Blueprint {
	return []Blueprint{
		{
			ID:            "article",
			NameHi:        "लेख",
			NameEn:        "Article",
			DescriptionHi: "शीर्ष बैनर के साथ लेख",
			DescriptionEn: "A hero banner followed by rich text",
			Sections: []BlueprintSection{
				entry(sections.HeroContent{TitleHi: "लेख का शीर्षक", TitleEn: "Article title"}),
				defaultEntry(sections.TypeRichText),
			},
		},
		{
			ID:            "biography",
			NameHi:        "जीवन परिचय",
			NameEn:        "Biography",
			DescriptionHi: "परिचय, जीवनी और उपलब्धियाँ",
			DescriptionEn: "Introduction, biography and achievements",
			Sections: []BlueprintSection{
				entry(sections.HeroContent{TitleHi: "परिचय", TitleEn: "About"}),
				defaultEntry(sections.TypeBiography),
				entry(sections.StatsContent{Items: []sections.StatItem{
					{LabelHi: "वर्षों की सेवा", LabelEn: "Years of service", Value: "0"},
					{LabelHi: "पूर्ण परियोजनाएँ", LabelEn: "Projects completed", Value: "0"},
				}}),
			},
		},
		{
			ID:            "media",
			NameHi:        "मीडिया",
			NameEn:        "Media",
			DescriptionHi: "वीडियो संग्रह पृष्ठ",
			DescriptionEn: "A page collecting videos",
			Sections: []BlueprintSection{
				entry(sections.HeroContent{TitleHi: "मीडिया", TitleEn: "Media"}),
				defaultEntry(sections.TypeVideos),
			},
		},
		{
			ID:            "landing",
			NameHi:        "मुख्य पृष्ठ",
			NameEn:        "Landing",
			DescriptionHi: "मुख्य पृष्ठ के लिए पूर्ण लेआउट",
			DescriptionEn: "Full layout for the home page",
			Sections: []BlueprintSection{
				defaultEntry(sections.TypeHero),
				defaultEntry(sections.TypeStats),
				defaultEntry(sections.TypeRichText),
				defaultEntry(sections.TypeVideos),
			},
		},
	}
}

func entry(content sections.Content) BlueprintSection {
	raw, err := sections.EncodeContent(content)
	if err != nil {
		panic(err)
	}
	return BlueprintSection{Type: content.SectionType(), Content: raw}
}

func defaultEntry(t sections.Type) BlueprintSection {
	raw, err := sections.DefaultContentMap(t)
	if err != nil {
		panic(err)
	}
	return BlueprintSection{Type: t, Content: raw}
}

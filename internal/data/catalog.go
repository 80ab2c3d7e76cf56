// Package data provides static data definitions for the application.
// These data are maintained manually and updated periodically.
package data

import "github.com/studygate/partner-bot-go/internal/catalog"

// Universities returns the built-in catalog of institutions, used to seed an
// empty database when no external seed file is configured. IDs are stable;
// imports upsert by id.
func Universities() []catalog.University {
	return []catalog.University{
		{
			ID:            1,
			Name:          "Tsinghua University",
			LocalizedName: "清华大学",
			City:          "Beijing",
			Province:      "Beijing",
			Country:       "China",
			Aliases:       []string{"thu", "qinghua"},
		},
		{
			ID:            2,
			Name:          "Peking University",
			LocalizedName: "北京大学",
			City:          "Beijing",
			Province:      "Beijing",
			Country:       "China",
			Aliases:       []string{"pku", "beida"},
		},
		{
			ID:            3,
			Name:          "Shanghai Jiao Tong University",
			LocalizedName: "上海交通大学",
			City:          "Shanghai",
			Province:      "Shanghai",
			Country:       "China",
			Aliases:       []string{"sjtu", "jiaotong"},
		},
		{
			ID:            4,
			Name:          "Zhejiang University",
			LocalizedName: "浙江大学",
			City:          "Hangzhou",
			Province:      "Zhejiang",
			Country:       "China",
			Aliases:       []string{"zju", "zheda"},
		},
		{
			ID:            5,
			Name:          "Fudan University",
			LocalizedName: "复旦大学",
			City:          "Shanghai",
			Province:      "Shanghai",
			Country:       "China",
			Aliases:       []string{"fdu", "fudan"},
		},
		{
			ID:            6,
			Name:          "Jinan University",
			LocalizedName: "暨南大学",
			City:          "Guangzhou",
			Province:      "Guangdong",
			Country:       "China",
			Aliases:       []string{"jnu"},
		},
		{
			ID:            7,
			Name:          "Wuhan University",
			LocalizedName: "武汉大学",
			City:          "Wuhan",
			Province:      "Hubei",
			Country:       "China",
			Aliases:       []string{"whu", "wuda"},
		},
		{
			ID:            8,
			Name:          "Beijing Language and Culture University",
			LocalizedName: "北京语言大学",
			City:          "Beijing",
			Province:      "Beijing",
			Country:       "China",
			Aliases:       []string{"blcu"},
		},
		{
			ID:            9,
			Name:          "Harbin Institute of Technology",
			LocalizedName: "哈尔滨工业大学",
			City:          "Harbin",
			Province:      "Heilongjiang",
			Country:       "China",
			Aliases:       []string{"hit"},
		},
		{
			ID:            10,
			Name:          "Nanjing University",
			LocalizedName: "南京大学",
			City:          "Nanjing",
			Province:      "Jiangsu",
			Country:       "China",
			Aliases:       []string{"nju", "nanda"},
		},
	}
}

// Majors returns the built-in program offerings for the built-in
// universities. Keywords are lowercase search terms partners commonly use.
func Majors() []catalog.Major {
	return []catalog.Major{
		{ID: 101, UniversityID: 1, Name: "Computer Science and Technology", DegreeLevel: "Bachelor", Keywords: []string{"cs", "computer", "software", "it"}},
		{ID: 102, UniversityID: 1, Name: "Mechanical Engineering", DegreeLevel: "Master", Keywords: []string{"mechanical", "engineering"}},
		{ID: 103, UniversityID: 2, Name: "International Relations", DegreeLevel: "Bachelor", Keywords: []string{"politics", "diplomacy"}},
		{ID: 104, UniversityID: 2, Name: "Chinese Language Program", DegreeLevel: "Language", Keywords: []string{"chinese", "mandarin", "hsk"}},
		{ID: 105, UniversityID: 3, Name: "Electrical Engineering", DegreeLevel: "Master", Keywords: []string{"ee", "electrical", "electronics"}},
		{ID: 106, UniversityID: 3, Name: "Business Administration", DegreeLevel: "Master", Keywords: []string{"mba", "business", "management"}},
		{ID: 107, UniversityID: 4, Name: "Computer Science and Technology", DegreeLevel: "Master", Keywords: []string{"cs", "computer", "ai"}},
		{ID: 108, UniversityID: 5, Name: "Clinical Medicine (MBBS)", DegreeLevel: "Bachelor", Keywords: []string{"mbbs", "medicine", "medical", "doctor"}},
		{ID: 109, UniversityID: 6, Name: "International Economics and Trade", DegreeLevel: "Bachelor", Keywords: []string{"economics", "trade", "business"}},
		{ID: 110, UniversityID: 6, Name: "Chinese Language Program", DegreeLevel: "Language", Keywords: []string{"chinese", "mandarin"}},
		{ID: 111, UniversityID: 7, Name: "Civil Engineering", DegreeLevel: "Bachelor", Keywords: []string{"civil", "construction", "engineering"}},
		{ID: 112, UniversityID: 8, Name: "Chinese Language Program", DegreeLevel: "Language", Keywords: []string{"chinese", "mandarin", "hsk"}},
		{ID: 113, UniversityID: 9, Name: "Aerospace Engineering", DegreeLevel: "PhD", Keywords: []string{"aerospace", "aviation"}},
		{ID: 114, UniversityID: 10, Name: "Software Engineering", DegreeLevel: "Bachelor", Keywords: []string{"software", "programming", "cs"}},
	}
}

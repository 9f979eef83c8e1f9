package seed

import (
	"time"

	"github.com/vikask011/react-native/internal/domain"
)

// IST is the zone the demo catalog dates are expressed in
var IST = time.FixedZone("IST", 5*60*60+30*60)

func at(year int, month time.Month, day, hour, minute int) time.Time {
	return time.Date(year, month, day, hour, minute, 0, 0, IST)
}

// catalog is the demo event set loaded into an empty database
var catalog = []domain.Event{
	{
		Title:          "Coldplay India Tour 2025",
		Description:    "Experience the magic of Coldplay live in Mumbai! A night filled with dazzling lights, confetti, and timeless hits from one of the world's biggest bands.",
		Location:       "DY Patil Stadium, Mumbai",
		Date:           at(2025, 1, 19, 19, 0),
		Price:          4999,
		Category:       "Music",
		AvailableSeats: 50000,
	},
	{
		Title:          "Arijit Singh Live Concert",
		Description:    "The soulful voice of Bollywood, Arijit Singh, performs his greatest hits live in Delhi. An unforgettable evening of emotion and music.",
		Location:       "Jawaharlal Nehru Stadium, Delhi",
		Date:           at(2025, 3, 15, 18, 30),
		Price:          2499,
		Category:       "Music",
		AvailableSeats: 35000,
	},
	{
		Title:          "Sunburn Festival 2025",
		Description:    "Asia's biggest electronic music festival returns to Goa! Featuring world-class DJs, stunning visuals, and three days of non-stop music.",
		Location:       "Vagator Beach, Goa",
		Date:           at(2025, 4, 27, 16, 0),
		Price:          3999,
		Category:       "Music",
		AvailableSeats: 20000,
	},
	{
		Title:          "AR Rahman Symphony Night",
		Description:    "An orchestral celebration of AR Rahman's legendary compositions. Experience Oscar-winning music performed live with a 100-piece orchestra.",
		Location:       "Nehru Indoor Stadium, Chennai",
		Date:           at(2025, 5, 10, 19, 0),
		Price:          1999,
		Category:       "Music",
		AvailableSeats: 8000,
	},
	{
		Title:          "TechSpark India 2025",
		Description:    "India's premier tech conference featuring keynotes from global tech leaders, hands-on AI/ML workshops, and a massive startup expo.",
		Location:       "Bangalore International Exhibition Centre, Bengaluru",
		Date:           at(2025, 2, 20, 9, 0),
		Price:          1499,
		Category:       "Tech",
		AvailableSeats: 5000,
	},
	{
		Title:          "AI & Machine Learning Summit",
		Description:    "Deep dive into the future of AI with industry experts. Covers generative AI, LLMs, computer vision, and real-world deployment strategies.",
		Location:       "Hyderabad International Convention Centre, Hyderabad",
		Date:           at(2025, 3, 8, 9, 30),
		Price:          2999,
		Category:       "Tech",
		AvailableSeats: 2000,
	},
	{
		Title:          "Startup Pitch Night Bengaluru",
		Description:    "Watch 20 promising startups pitch to top VCs and angel investors. Network with founders, mentors, and the broader startup ecosystem.",
		Location:       "91springboard, Bengaluru",
		Date:           at(2025, 2, 28, 18, 0),
		Price:          0,
		Category:       "Tech",
		AvailableSeats: 300,
	},
	{
		Title:          "DevFest Mumbai 2025",
		Description:    "Google Developer Groups presents DevFest Mumbai - a full day of talks on Flutter, Firebase, Cloud, and Android by Google Developer Experts.",
		Location:       "NSCI Dome, Mumbai",
		Date:           at(2025, 4, 5, 10, 0),
		Price:          499,
		Category:       "Tech",
		AvailableSeats: 1500,
	},
	{
		Title:          "IPL 2025: MI vs CSK",
		Description:    "The most anticipated rivalry in cricket returns! Mumbai Indians take on Chennai Super Kings in a blockbuster IPL clash.",
		Location:       "Wankhede Stadium, Mumbai",
		Date:           at(2025, 4, 12, 19, 30),
		Price:          1200,
		Category:       "Sports",
		AvailableSeats: 33000,
	},
	{
		Title:          "Pro Kabaddi League Finals",
		Description:    "The grand finale of Pro Kabaddi League Season 11. Two titans of Kabaddi battle it out for the ultimate glory.",
		Location:       "EKA Arena, Ahmedabad",
		Date:           at(2025, 3, 22, 20, 0),
		Price:          799,
		Category:       "Sports",
		AvailableSeats: 10000,
	},
	{
		Title:          "Bengaluru FC vs Mumbai City FC",
		Description:    "ISL Super Derby! Bengaluru FC hosts Mumbai City FC in a high-octane clash that promises edge-of-the-seat football action.",
		Location:       "Sree Kanteerava Stadium, Bengaluru",
		Date:           at(2025, 2, 16, 19, 0),
		Price:          399,
		Category:       "Sports",
		AvailableSeats: 22000,
	},
	{
		Title:          "India Food & Wine Festival",
		Description:    "Celebrate the finest flavours of India and the world. 100+ food stalls, master chef demos, wine tastings, and culinary workshops.",
		Location:       "MMRDA Grounds, Bandra Kurla Complex, Mumbai",
		Date:           at(2025, 3, 1, 11, 0),
		Price:          599,
		Category:       "Food",
		AvailableSeats: 15000,
	},
	{
		Title:          "Street Food Festival Bengaluru",
		Description:    "A three-day celebration of India's iconic street food! Over 50 vendors from across the country - chaat, dosas, rolls, desserts, and more.",
		Location:       "Palace Grounds, Bengaluru",
		Date:           at(2025, 4, 18, 12, 0),
		Price:          0,
		Category:       "Food",
		AvailableSeats: 25000,
	},
	{
		Title:          "Masterclass: The Art of Biryani",
		Description:    "Learn the secrets of authentic Hyderabadi Dum Biryani from award-winning chef Imtiaz Qureshi. Includes a hands-on cooking session and full meal.",
		Location:       "ITC Kohenur, Hyderabad",
		Date:           at(2025, 3, 30, 14, 0),
		Price:          3499,
		Category:       "Food",
		AvailableSeats: 50,
	},
	{
		Title:          "Kochi-Muziris Biennale 2025",
		Description:    "South Asia's largest contemporary art exhibition returns to the historic shores of Kochi, featuring 100+ artists from 30 countries.",
		Location:       "Aspinwall House, Kochi",
		Date:           at(2025, 2, 12, 10, 0),
		Price:          100,
		Category:       "Art",
		AvailableSeats: 5000,
	},
	{
		Title:          "Delhi Art Week",
		Description:    "A curated week of gallery openings, artist talks, live installations, and workshops celebrating contemporary Indian and global art.",
		Location:       "Lodhi Art District, New Delhi",
		Date:           at(2025, 3, 17, 10, 0),
		Price:          0,
		Category:       "Art",
		AvailableSeats: 3000,
	},
	{
		Title:          "Zakir Khan Live: Sakht Launda Tour",
		Description:    "India's most beloved stand-up comedian Zakir Khan is back with a brand new hour of honest, heartwarming, and hilarious storytelling.",
		Location:       "Siri Fort Auditorium, New Delhi",
		Date:           at(2025, 3, 5, 19, 30),
		Price:          999,
		Category:       "Comedy",
		AvailableSeats: 1800,
	},
	{
		Title:          "The Comedy Store Mumbai: Open Mic Night",
		Description:    "Catch the next big voices in Indian comedy! 12 fresh comedians take the stage for a wild night of laughs at Mumbai's iconic comedy club.",
		Location:       "The Comedy Store, Lower Parel, Mumbai",
		Date:           at(2025, 2, 22, 20, 0),
		Price:          299,
		Category:       "Comedy",
		AvailableSeats: 200,
	},
	{
		Title:          "Kenny Sebastian: New Special Live",
		Description:    "Kenny Sebastian brings his new stand-up special to Bengaluru before it drops online. Expect relatable stories, live music, and non-stop laughs.",
		Location:       "Chowdaiah Memorial Hall, Bengaluru",
		Date:           at(2025, 4, 20, 19, 0),
		Price:          799,
		Category:       "Comedy",
		AvailableSeats: 1200,
	},
	{
		Title:          "TiE Global Summit 2025",
		Description:    "The world's largest entrepreneurship conference comes to India. Featuring 200+ speakers, 3000+ attendees, and unparalleled networking opportunities.",
		Location:       "Sheraton Grand, Bengaluru",
		Date:           at(2025, 5, 22, 9, 0),
		Price:          9999,
		Category:       "Business",
		AvailableSeats: 3000,
	},
	{
		Title:          "Women in Leadership Summit",
		Description:    "An inspiring full-day summit celebrating and empowering women leaders across industries with keynotes, panel discussions, and mentoring circles.",
		Location:       "Taj Lands End, Mumbai",
		Date:           at(2025, 3, 8, 9, 0),
		Price:          1999,
		Category:       "Business",
		AvailableSeats: 800,
	},
	{
		Title:          "Digital Marketing Masterclass",
		Description:    "A hands-on full-day workshop covering SEO, performance marketing, social media strategy, and growth hacking for startups and SMEs.",
		Location:       "91springboard, Koramangala, Bengaluru",
		Date:           at(2025, 3, 25, 10, 0),
		Price:          2499,
		Category:       "Business",
		AvailableSeats: 150,
	},
}

// Catalog returns fresh copies of the demo events, all active
func Catalog() []*domain.Event {
	events := make([]*domain.Event, len(catalog))
	for i := range catalog {
		e := catalog[i]
		e.IsActive = true
		events[i] = &e
	}
	return events
}

package repository

import "github.com/iliyamo/cinema-ticket-booking/internal/model"

// Sentinel filter values that disable the corresponding catalog check.
const (
    AllGenres   = "All"
    AllTheaters = "All Theaters"
    AllPrices   = "All Prices"
)

var movies = []model.Movie{
    {
        ID:        "1",
        Title:     "The Dark Knight Returns",
        Genres:    []string{"Action", "Thriller", "Crime"},
        Rating:    9.1,
        Duration:  "2h 45m",
        Language:  "English",
        Plot:      "When the menace known as the Joker wreaks havoc and chaos on the people of Gotham, Batman must accept one of the greatest psychological and physical tests of his ability to fight injustice.",
        Poster:    "/assets/movie1.jpg",
        Price:     350,
        ShowTimes: []string{"10:00 AM", "1:30 PM", "5:00 PM", "8:30 PM"},
        Theaters:  []string{"PVR Forum Mall", "INOX R-City", "Cinepolis VIP"},
        IsRunning: true,
    },
    {
        ID:        "2",
        Title:     "Galactic Odyssey",
        Genres:    []string{"Sci-Fi", "Adventure", "Action"},
        Rating:    8.7,
        Duration:  "2h 20m",
        Language:  "English",
        Plot:      "A team of explorers travel through a wormhole in space in an attempt to ensure humanity's survival in a distant galaxy filled with wonders and dangers.",
        Poster:    "/assets/movie2.jpg",
        Price:     400,
        ShowTimes: []string{"11:00 AM", "2:30 PM", "6:00 PM", "9:30 PM"},
        Theaters:  []string{"PVR Phoenix", "INOX Palladium", "Cinepolis DLF"},
        IsRunning: true,
    },
    {
        ID:        "3",
        Title:     "Love Actually",
        Genres:    []string{"Romance", "Comedy", "Drama"},
        Rating:    7.8,
        Duration:  "2h 15m",
        Language:  "English",
        Plot:      "Follows the lives of eight very different couples in dealing with their love lives in various loosely interrelated tales all set during a frantic month before Christmas in London.",
        Poster:    "/assets/movie3.jpg",
        Price:     280,
        ShowTimes: []string{"12:00 PM", "3:30 PM", "7:00 PM", "10:00 PM"},
        Theaters:  []string{"PVR Select City", "INOX Insignia", "Carnival Cinemas"},
        IsRunning: true,
    },
    {
        ID:        "4",
        Title:     "Midnight Terror",
        Genres:    []string{"Horror", "Thriller", "Mystery"},
        Rating:    8.2,
        Duration:  "1h 55m",
        Language:  "English",
        Plot:      "A family discovers that dark spirits have invaded their home after their son inexplicably falls into a coma. They must face their deepest fears to save him.",
        Poster:    "/assets/movie4.jpg",
        Price:     320,
        ShowTimes: []string{"7:00 PM", "9:45 PM", "12:15 AM"},
        Theaters:  []string{"PVR Forum Mall", "INOX R-City", "Cinepolis VIP"},
        IsRunning: true,
    },
    {
        ID:        "5",
        Title:     "Mumbai Chronicles",
        Genres:    []string{"Drama", "Crime", "Thriller"},
        Rating:    8.9,
        Duration:  "2h 35m",
        Language:  "Hindi",
        Plot:      "The story of Mumbai's transformation through the eyes of common people, showcasing the city's spirit and resilience against all odds.",
        Poster:    "/assets/movie1.jpg",
        Price:     250,
        ShowTimes: []string{"10:30 AM", "2:00 PM", "5:30 PM", "9:00 PM"},
        Theaters:  []string{"PVR Lower Parel", "INOX Nariman Point", "Regal Cinema"},
        IsRunning: true,
    },
    {
        ID:        "6",
        Title:     "Bollywood Masala",
        Genres:    []string{"Comedy", "Musical", "Romance"},
        Rating:    7.5,
        Duration:  "2h 30m",
        Language:  "Hindi",
        Plot:      "A colorful musical comedy that celebrates love, family, and the magic of Bollywood with spectacular dance sequences and melodious songs.",
        Poster:    "/assets/movie3.jpg",
        Price:     300,
        ShowTimes: []string{"11:30 AM", "3:00 PM", "6:30 PM", "10:00 PM"},
        Theaters:  []string{"Maratha Mandir", "Gaiety Galaxy", "PVR Phoenix"},
        IsRunning: true,
    },
}

var genres = []string{
    AllGenres,
    "Action",
    "Adventure",
    "Comedy",
    "Crime",
    "Drama",
    "Horror",
    "Musical",
    "Mystery",
    "Romance",
    "Sci-Fi",
    "Thriller",
}

var theaters = []string{
    AllTheaters,
    "PVR Forum Mall",
    "INOX R-City",
    "Cinepolis VIP",
    "PVR Phoenix",
    "INOX Palladium",
    "Cinepolis DLF",
    "PVR Select City",
    "INOX Insignia",
    "Carnival Cinemas",
    "PVR Lower Parel",
    "INOX Nariman Point",
    "Regal Cinema",
    "Maratha Mandir",
    "Gaiety Galaxy",
}

var priceRanges = []model.PriceRange{
    {Label: AllPrices, Min: 0, Max: 1000},
    {Label: "Under ₹300", Min: 0, Max: 300},
    {Label: "₹300 - ₹400", Min: 300, Max: 400},
    {Label: "Above ₹400", Min: 400, Max: 1000},
}

package catalog

var cats = []Pet{
	{ID: 1, Name: "Luna", Age: "2 years", Gender: "Female", Breed: "Domestic Shorthair", Fee: 120},
	{ID: 2, Name: "Milo", Age: "1 year", Gender: "Male", Breed: "Tabby", Fee: 100},
	{ID: 3, Name: "Chloe", Age: "3 years", Gender: "Female", Breed: "Siamese", Fee: 180},
	{ID: 4, Name: "Leo", Age: "4 years", Gender: "Male", Breed: "Maine Coon", Fee: 200},
	{ID: 5, Name: "Nala", Age: "2 years", Gender: "Female", Breed: "Ragdoll", Fee: 190},
	{ID: 6, Name: "Tiger", Age: "1.5 years", Gender: "Male", Breed: "Bengal", Fee: 170},
	{ID: 7, Name: "Simba", Age: "3 years", Gender: "Male", Breed: "Sphynx", Fee: 160},
	{ID: 8, Name: "Bella", Age: "5 years", Gender: "Female", Breed: "British Shorthair", Fee: 140},
	{ID: 9, Name: "Oreo", Age: "2 years", Gender: "Male", Breed: "Scottish Fold", Fee: 150},
	{ID: 10, Name: "Mochi", Age: "1 year", Gender: "Female", Breed: "Abyssinian", Fee: 130},
	{ID: 11, Name: "Sushi", Age: "4 years", Gender: "Male", Breed: "Russian Blue", Fee: 160},
	{ID: 12, Name: "Whiskers", Age: "6 years", Gender: "Female", Breed: "Persian", Fee: 180},
}

var dogs = []Pet{
	{ID: 13, Name: "Bear", Age: "3 years", Gender: "Male", Breed: "Poodle (Toy)", Fee: 120},
	{ID: 14, Name: "Daisy", Age: "2 years", Gender: "Female", Breed: "Shih Tzu", Fee: 100},
	{ID: 15, Name: "Rocky", Age: "4 years", Gender: "Male", Breed: "Chihuahua", Fee: 90},
	{ID: 16, Name: "Bailey", Age: "1.5 years", Gender: "Female", Breed: "Maltese", Fee: 130},
	{ID: 17, Name: "Max", Age: "2 years", Gender: "Male", Breed: "Pomeranian", Fee: 140},
	{ID: 18, Name: "Lucy", Age: "3 years", Gender: "Female", Breed: "Cavalier King Charles Spaniel", Fee: 150},
	{ID: 19, Name: "Charlie", Age: "5 years", Gender: "Male", Breed: "Miniature Schnauzer", Fee: 110},
	{ID: 20, Name: "Lola", Age: "2 years", Gender: "Female", Breed: "Dachshund", Fee: 100},
	{ID: 21, Name: "Duke", Age: "1 year", Gender: "Male", Breed: "Jack Russell Terrier", Fee: 90},
	{ID: 22, Name: "Sadie", Age: "4 years", Gender: "Female", Breed: "Boston Terrier", Fee: 120},
	{ID: 23, Name: "Toby", Age: "3 years", Gender: "Male", Breed: "Papillon", Fee: 130},
	{ID: 24, Name: "Buddy", Age: "2 years", Gender: "Male", Breed: "Golden Retriever", Fee: 250},
}

var available []Pet

func init() {
	available = make([]Pet, 0, len(cats)+len(dogs))
	for _, c := range cats {
		c.Type = "cat"
		c.HDBApproved = true
		c.Description = describe(c)
		available = append(available, c)
	}
	for _, d := range dogs {
		d.Type = "dog"
		d.HDBApproved = HDBApprovedBreed(d.Breed)
		d.Description = describe(d)
		available = append(available, d)
	}
}

// Available returns the full listing, cats then dogs. Callers get a copy.
func Available() []Pet {
	out := make([]Pet, len(available))
	copy(out, available)
	return out
}

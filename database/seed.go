package database

import (
	"log"
	"time"

	"gorm.io/gorm"

	"agroio.app/models"
)

func floatPtr(v float64) *float64 { return &v }

// Seed populates the reference catalogs and demo content on first start.
// Each table is only filled when it is still empty, so restarting the
// application never duplicates or overwrites user data.
func Seed(db *gorm.DB) error {
	seeders := []func(*gorm.DB) error{
		seedTasks,
		seedVegetables,
		seedVegetableDatabase,
		seedFarmingSystems,
		seedContacts,
		seedTransactions,
		seedHarvests,
		seedCommunity,
		seedMarket,
		seedFaqs,
	}

	for _, seed := range seeders {
		if err := seed(db); err != nil {
			return err
		}
	}

	log.Println("[DEBUG] Database seeding completed")
	return nil
}

func isEmpty(db *gorm.DB, model interface{}) (bool, error) {
	var count int64
	if err := db.Model(model).Count(&count).Error; err != nil {
		return false, err
	}
	return count == 0, nil
}

func seedTasks(db *gorm.DB) error {
	empty, err := isEmpty(db, &models.Task{})
	if err != nil || !empty {
		return err
	}

	today := time.Now().Truncate(24 * time.Hour)
	tomorrow := today.AddDate(0, 0, 1)
	nextWeek := today.AddDate(0, 0, 7)

	tasks := []models.Task{
		{Title: "Irrigare le piante di pomodoro", DueDate: today, Category: "Daily"},
		{Title: "Controllare la presenza di parassiti sulle zucchine", DueDate: today, Category: "Daily"},
		{Title: "Fertilizzare le aiuole delle fragole", DueDate: tomorrow, Category: "Weekly"},
		{Title: "Preparare il terreno per la semina delle carote", DueDate: nextWeek, Category: "General"},
		{Title: "Pulire gli attrezzi da giardino", DueDate: today, Completed: true, Category: "Weekly"},
	}
	return db.Create(&tasks).Error
}

func seedVegetables(db *gorm.DB) error {
	empty, err := isEmpty(db, &models.Vegetable{})
	if err != nil || !empty {
		return err
	}

	vegetables := []models.Vegetable{
		{Name: "Pomodoro San Marzano", PlantingDate: time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC), Status: models.StatusFlowering, ImageURL: "https://picsum.photos/seed/tomato/400/300", ImageState: models.ImageReady},
		{Name: "Zucchina Nera di Milano", PlantingDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), Status: models.StatusGrowing, ImageURL: "https://picsum.photos/seed/zucchini/400/300", ImageState: models.ImageReady},
		{Name: "Basilico Genovese", PlantingDate: time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC), Status: models.StatusHarvestable, ImageURL: "https://picsum.photos/seed/basil/400/300", ImageState: models.ImageReady},
		{Name: "Lattuga Romana", PlantingDate: time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), Status: models.StatusSeedling, ImageURL: "https://picsum.photos/seed/lettuce/400/300", ImageState: models.ImageReady},
	}
	return db.Create(&vegetables).Error
}

func seedVegetableDatabase(db *gorm.DB) error {
	empty, err := isEmpty(db, &models.VegetableInfo{})
	if err != nil || !empty {
		return err
	}

	infos := []models.VegetableInfo{
		{Name: "Pomodoro", Family: "Solanaceae", Exposure: "Pieno sole", Watering: "Regolare e costante", SpacingPlants: 40, SpacingRows: 70, Sowing: "Feb-Apr", Harvest: "Giu-Set", Companions: "Basilico, Carote, Cipolle", Avoid: "Patate, Finocchi", Yield: "2-5 kg per pianta"},
		{Name: "Zucchina", Family: "Cucurbitaceae", Exposure: "Pieno sole", Watering: "Abbondante", SpacingPlants: 80, SpacingRows: 120, Sowing: "Apr-Giu", Harvest: "Giu-Ott", Companions: "Fagioli, Mais, Lattuga", Avoid: "Patate", Yield: "10-20 frutti per pianta"},
		{Name: "Basilico", Family: "Lamiaceae", Exposure: "Pieno sole/Mezz'ombra", Watering: "Frequente", SpacingPlants: 20, SpacingRows: 30, Sowing: "Mar-Giu", Harvest: "Mag-Ott", Companions: "Pomodori, Peperoni", Avoid: "Ruta", Yield: "Raccolta continua"},
		{Name: "Lattuga", Family: "Asteraceae", Exposure: "Mezz'ombra", Watering: "Costante", SpacingPlants: 25, SpacingRows: 30, Sowing: "Feb-Set", Harvest: "Apr-Nov", Companions: "Carote, Fragole, Ravanelli", Avoid: "Prezzemolo", Yield: "1 cespo per pianta"},
		{Name: "Carota", Family: "Apiaceae", Exposure: "Pieno sole/Mezz'ombra", Watering: "Regolare", SpacingPlants: 5, SpacingRows: 20, Sowing: "Feb-Lug", Harvest: "Mag-Nov", Companions: "Lattuga, Pomodori, Piselli", Avoid: "Aneto", Yield: "1 radice per pianta"},
	}
	return db.Create(&infos).Error
}

func seedFarmingSystems(db *gorm.DB) error {
	empty, err := isEmpty(db, &models.FarmingSystem{})
	if err != nil || !empty {
		return err
	}

	systems := []models.FarmingSystem{
		{
			Name:          "Agricoltura Biologica",
			Description:   "Utilizza metodi naturali, evitando prodotti chimici di sintesi.",
			Advantages:    "Rispetto per l'ambiente;Prodotti più sani;Migliora la fertilità del suolo",
			Disadvantages: "Rese potenzialmente inferiori;Maggiore manodopera;Controllo parassiti più complesso",
		},
		{
			Name:          "Agricoltura Integrata",
			Description:   "Combina pratiche convenzionali e biologiche per la sostenibilità.",
			Advantages:    "Uso mirato di agrofarmaci;Buon equilibrio resa/sostenibilità;Minore impatto ambientale del convenzionale",
			Disadvantages: "Richiede alta competenza tecnica;Certificazione complessa",
		},
		{
			Name:          "Agricoltura di Precisione",
			Description:   "Impiega tecnologie avanzate (GPS, droni) per ottimizzare gli input.",
			Advantages:    "Massima efficienza;Riduzione sprechi (acqua, fertilizzanti);Dati precisi per decisioni migliori",
			Disadvantages: "Alti costi iniziali;Richiede competenze tecnologiche;Dipendenza dalla tecnologia",
		},
	}
	return db.Create(&systems).Error
}

func seedContacts(db *gorm.DB) error {
	empty, err := isEmpty(db, &models.Contact{})
	if err != nil || !empty {
		return err
	}

	contacts := []models.Contact{
		{Name: "Mercato Agricolo Locale", Phone: "061234567", Email: "info@mercatoagricolo.it"},
		{Name: "Forniture Verdi S.r.l.", Phone: "029876543", Email: "ordini@fornitureverdi.com"},
		{Name: "Ristorante La Cascina", Phone: "0815556677", Email: "chef@lacascina.it"},
	}
	return db.Create(&contacts).Error
}

func seedTransactions(db *gorm.DB) error {
	empty, err := isEmpty(db, &models.Transaction{})
	if err != nil || !empty {
		return err
	}

	day := func(d int) time.Time { return time.Date(2024, 7, d, 0, 0, 0, 0, time.UTC) }

	transactions := []models.Transaction{
		{Date: day(15), Description: "Vendita pomodori", Amount: 150.00, Type: models.TransactionIncome, Category: "Vendite", ContactName: "Mercato Agricolo Locale", Quantity: floatPtr(50), Unit: "kg"},
		{Date: day(14), Description: "Acquisto fertilizzante organico", Amount: 45.50, Type: models.TransactionExpense, Category: "Forniture", ContactName: "Forniture Verdi S.r.l.", Quantity: floatPtr(5), Unit: "l"},
		{Date: day(12), Description: "Vendita zucchine e basilico", Amount: 85.20, Type: models.TransactionIncome, Category: "Vendite", ContactName: "Ristorante La Cascina", Quantity: floatPtr(20), Unit: "unità"},
		{Date: day(10), Description: "Carburante per trattore", Amount: 60.00, Type: models.TransactionExpense, Category: "Operative", ContactName: "Distributore IP", Quantity: floatPtr(30), Unit: "l"},
		{Date: day(8), Description: "Riparazione sistema di irrigazione", Amount: 120.00, Type: models.TransactionExpense, Category: "Manutenzione", ContactName: "Idraulica Rossi"},
		{Date: day(16), Description: "Vendita lattuga", Amount: 55.00, Type: models.TransactionIncome, Category: "Vendite", ContactName: "Mercato Agricolo Locale", Quantity: floatPtr(100), Unit: "unità"},
	}
	return db.Create(&transactions).Error
}

func seedHarvests(db *gorm.DB) error {
	empty, err := isEmpty(db, &models.Harvest{})
	if err != nil || !empty {
		return err
	}

	harvests := []models.Harvest{
		{VegetableID: 3, VegetableName: "Basilico Genovese", Date: time.Date(2024, 7, 20, 0, 0, 0, 0, time.UTC), Quantity: 200, Unit: "g", Notes: "Primo raccolto, foglie molto profumate."},
		{VegetableID: 1, VegetableName: "Pomodoro San Marzano", Date: time.Date(2024, 7, 22, 0, 0, 0, 0, time.UTC), Quantity: 5, Unit: "kg", Notes: "Primi frutti maturi, ottimi per la salsa."},
		{VegetableID: 2, VegetableName: "Zucchina Nera di Milano", Date: time.Date(2024, 7, 23, 0, 0, 0, 0, time.UTC), Quantity: 8, Unit: "pezzi", Notes: "Zucchine di medie dimensioni."},
	}
	return db.Create(&harvests).Error
}

func seedCommunity(db *gorm.DB) error {
	empty, err := isEmpty(db, &models.CommunityPost{})
	if err != nil {
		return err
	}
	if empty {
		posts := []models.CommunityPost{
			{Author: "Giulia Bianchi", AvatarURL: "https://picsum.photos/seed/giulia/100/100", Content: "Qualcuno ha consigli su come combattere la peronospora del pomodoro in modo biologico? Quest'anno è un disastro!", ImageURL: "https://picsum.photos/seed/peronospora/800/600", Likes: 12, Comments: 5},
			{Author: "Marco Verdi", AvatarURL: "https://picsum.photos/seed/marco/100/100", Content: "Raccolto di zucchine eccezionale! La consociazione con i fagioli ha funzionato alla grande. Consiglio a tutti di provare.", Likes: 45, Comments: 11},
			{Author: "Mario Rossi", AvatarURL: "https://picsum.photos/seed/user/100/100", Content: "Sto cercando di migliorare la fertilità del mio suolo. Avete mai provato la tecnica del sovescio? Mi piacerebbe sentire le vostre esperienze.", Likes: 28, Comments: 9},
		}
		if err := db.Create(&posts).Error; err != nil {
			return err
		}
	}

	empty, err = isEmpty(db, &models.PartnerStore{})
	if err != nil {
		return err
	}
	if empty {
		stores := []models.PartnerStore{
			{Name: "Bio Emporio Srl", Address: "Via Roma 10, Milano", Website: "https://www.bioemporio.it", Latitude: 45.4642, Longitude: 9.1900},
			{Name: "La Terra Fertile", Address: "Corso Vittorio Emanuele 150, Napoli", Website: "https://www.laterrafertile.it", Latitude: 40.8518, Longitude: 14.2681},
			{Name: "Azienda Agricola Sole d'Oro", Address: "Contrada da Sole, 1, Palermo", Website: "https://www.soledoro.it", Latitude: 38.1157, Longitude: 13.3615},
		}
		if err := db.Create(&stores).Error; err != nil {
			return err
		}
	}

	empty, err = isEmpty(db, &models.CommunityUser{})
	if err != nil {
		return err
	}
	if empty {
		users := []models.CommunityUser{
			{Name: "Luca Neri", Bio: "Coltivatore di ortaggi biologici", Latitude: 44.4949, Longitude: 11.3426},
			{Name: "Sofia Gallo", Bio: "Apicoltrice e frutticoltrice", Latitude: 43.7696, Longitude: 11.2558},
			{Name: "Davide Esposito", Bio: "Esperto di permacultura", Latitude: 41.9028, Longitude: 12.4964},
		}
		if err := db.Create(&users).Error; err != nil {
			return err
		}
	}

	return nil
}

func seedMarket(db *gorm.DB) error {
	empty, err := isEmpty(db, &models.MarketItem{})
	if err != nil || !empty {
		return err
	}

	items := []models.MarketItem{
		{Type: "equipment", Name: "Motozappa Benassi BL105", Description: "Usata due stagioni, motore revisionato a marzo.", Price: 450, ImageURL: "https://picsum.photos/seed/motozappa/400/300", Seller: "Luca Neri", Location: "Bologna", Condition: "Buono Stato"},
		{Type: "equipment", Name: "Serra a tunnel 6x3m", Description: "Telo da sostituire, struttura in ottime condizioni.", Price: 280, ImageURL: "https://picsum.photos/seed/serra/400/300", Seller: "Davide Esposito", Location: "Roma", Condition: "Da Revisionare"},
		{Type: "equipment", Name: "Kit irrigazione a goccia 50m", Description: "Mai installato, ancora imballato.", Price: 75, ImageURL: "https://picsum.photos/seed/irrigazione/400/300", Seller: "Sofia Gallo", Location: "Firenze", Condition: "Come Nuovo"},
		{Type: "produce", Name: "Pomodori San Marzano", Description: "Cassetta da 5 kg, raccolti in giornata.", Price: 12, ImageURL: "https://picsum.photos/seed/pomodori/400/300", Seller: "Mario Rossi", Location: "Napoli"},
		{Type: "produce", Name: "Miele millefiori", Description: "Vasetto da 500 g, produzione propria.", Price: 8, ImageURL: "https://picsum.photos/seed/miele/400/300", Seller: "Sofia Gallo", Location: "Firenze"},
		{Type: "produce", Name: "Basilico fresco", Description: "Mazzi appena raccolti, ideali per il pesto.", Price: 2.5, ImageURL: "https://picsum.photos/seed/basilico/400/300", Seller: "Giulia Bianchi", Location: "Genova"},
	}
	return db.Create(&items).Error
}

func seedFaqs(db *gorm.DB) error {
	empty, err := isEmpty(db, &models.FaqItem{})
	if err != nil || !empty {
		return err
	}

	faqs := []models.FaqItem{
		{Question: "Come cambio il mio piano di abbonamento?", Answer: "Apri la sezione Upgrade dal menu laterale e scegli il piano desiderato. Il cambio è immediato."},
		{Question: "Quanto spesso vengono aggiornate le previsioni meteo?", Answer: "Le previsioni vengono aggiornate ogni 30 minuti usando i dati del servizio Open-Meteo per la tua posizione."},
		{Question: "Come funziona la diagnosi delle piante con l'AgroGiardiniere?", Answer: "Carica una foto della pianta e l'assistente analizza lo stato di salute, i problemi rilevati e gli interventi consigliati."},
		{Question: "Posso registrare raccolti con unità di misura diverse?", Answer: "Sì, ogni raccolto può essere registrato in kg, g o pezzi. Il grafico mensile mostra una sola unità alla volta."},
		{Question: "I miei dati di cassa sono visibili ad altri utenti?", Answer: "No, le entrate e le uscite sono private e visibili solo dal tuo account."},
		{Question: "Come vengono generate le immagini degli ortaggi?", Answer: "Quando aggiungi un ortaggio, un'immagine viene generata in background. Se la generazione fallisce viene usata una foto di repertorio."},
	}
	return db.Create(&faqs).Error
}

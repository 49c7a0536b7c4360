package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"math/rand"
	"net/http"
	"os"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"
)

// The simulator posts randomized breakdowns against a running server and
// then walks a few of them through the status workflow. It exists for demos
// and smoke-testing a fresh deployment.

// Location mirrors the lat/lon pair sent with a breakdown.
type Location struct {
	Lat float64
	Lon float64
}

// Operating cities, roughly matching the rental fleet's coverage.
var cities = []Location{
	{Lat: 12.9716, Lon: 77.5946}, // Bengaluru
	{Lat: 12.2958, Lon: 76.6394}, // Mysuru
	{Lat: 13.0827, Lon: 80.2707}, // Chennai
	{Lat: 17.3850, Lon: 78.4867}, // Hyderabad
	{Lat: 15.2993, Lon: 74.1240}, // Goa
	{Lat: 18.5204, Lon: 73.8567}, // Pune
}

var (
	scootyModels = []string{"Activa 6G", "Jupiter", "Access 125", "Ntorq", "Fascino"}
	carModels    = []string{"Swift", "i20", "Baleno", "Creta", "Nexon"}
	issues       = []string{
		"Engine not starting",
		"Flat tyre",
		"Battery dead",
		"Clutch cable snapped",
		"Overheating on highway",
		"Self start not working",
		"Brake lever loose",
	}
	executives = []string{"Asha", "Ravi", "Kiran", "Deepa", "Manju"}
)

func jitterLocation(base Location, meters float64) Location {
	latMetersPerDeg := 111320.0
	lonMetersPerDeg := 111320.0 * math.Cos(base.Lat*math.Pi/180)
	dLat := (rand.Float64()*2 - 1) * (meters / latMetersPerDeg)
	dLon := (rand.Float64()*2 - 1) * (meters / lonMetersPerDeg)
	return Location{Lat: base.Lat + dLat, Lon: base.Lon + dLon}
}

func randomLocation() Location {
	return jitterLocation(cities[rand.Intn(len(cities))], 2000)
}

func randomVehicleNumber() string {
	return fmt.Sprintf("KA%02d%c%c%04d",
		1+rand.Intn(60),
		'A'+rune(rand.Intn(26)),
		'A'+rune(rand.Intn(26)),
		1000+rand.Intn(9000))
}

func postJSON(url string, payload interface{}) (map[string]interface{}, error) {
	return doJSON(http.MethodPost, url, payload)
}

func patchJSON(url string, payload interface{}) (map[string]interface{}, error) {
	return doJSON(http.MethodPatch, url, payload)
}

func doJSON(method, url string, payload interface{}) (map[string]interface{}, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequest(method, url, bytes.NewBuffer(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Operator", "Simulator")
	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%s %s: unexpected status %s", method, url, resp.Status)
	}
	var result map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}
	return result, nil
}

func createBreakdown(apiURL string, n int) (string, error) {
	vehicleType := "Scooty"
	model := scootyModels[rand.Intn(len(scootyModels))]
	if rand.Intn(3) == 0 {
		vehicleType = "Car"
		model = carModels[rand.Intn(len(carModels))]
	}
	loc := randomLocation()
	payload := map[string]interface{}{
		"booking_id":      fmt.Sprintf("BK%04d", 1000+n),
		"customer_mobile": fmt.Sprintf("9%09d", rand.Intn(1000000000)),
		"pickup_location": "Simulated pickup point",
		"booking_days":    rand.Intn(7),
		"issue":           issues[rand.Intn(len(issues))],
		"vehicle_number":  randomVehicleNumber(),
		"vehicle_model":   model,
		"vehicle_type":    vehicleType,
		"latitude":        loc.Lat,
		"longitude":       loc.Lon,
		"priority":        []string{"Low", "Medium", "High"}[rand.Intn(3)],
		"followup_by":     executives[rand.Intn(len(executives))],
	}
	result, err := postJSON(apiURL+"/api/breakdowns", payload)
	if err != nil {
		return "", err
	}
	id, _ := result["id"].(string)
	return id, nil
}

func advanceStatus(apiURL, id string) error {
	steps := []string{"In Progress", "Resolved"}
	if rand.Intn(4) == 0 {
		steps = []string{"Cancelled"}
	}
	for _, status := range steps {
		if _, err := patchJSON(apiURL+"/api/breakdowns/"+id, map[string]string{"status": status}); err != nil {
			return err
		}
	}
	return nil
}

func main() {
	apiURL := os.Getenv("API_BASE_URL")
	if apiURL == "" {
		apiURL = "http://localhost:8080"
	}
	count := 10
	if v := os.Getenv("SIM_COUNT"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			count = parsed
		}
	}
	tick := 2 * time.Second
	if v := os.Getenv("SIM_TICK_SECONDS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			tick = time.Duration(parsed) * time.Second
		}
	}

	log.WithFields(log.Fields{"api": apiURL, "count": count}).Info("Breakdown simulation started")

	var ids []string
	for i := 0; i < count; i++ {
		id, err := createBreakdown(apiURL, i)
		if err != nil {
			log.WithError(err).Error("Failed to create breakdown")
			continue
		}
		log.WithField("id", id).Info("Created breakdown")
		ids = append(ids, id)
		time.Sleep(tick)
	}

	for _, id := range ids {
		if rand.Intn(2) == 0 {
			continue
		}
		if err := advanceStatus(apiURL, id); err != nil {
			log.WithFields(log.Fields{"id": id}).WithError(err).Error("Failed to advance status")
			continue
		}
		log.WithField("id", id).Info("Walked breakdown through workflow")
		time.Sleep(tick)
	}

	log.WithField("created", len(ids)).Info("Breakdown simulation finished")
}

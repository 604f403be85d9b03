package main

import (
    "encoding/json"
    "fmt"
    "io"
    "net/http"
)

// Manual probe of the live Open-Meteo API: verifies the daily variables the
// fetcher depends on are still served in the expected shape.
// Usage: go run ./test

type dailyBlock struct {
    Time               []string  `json:"time"`
    TempMax            []float64 `json:"temperature_2m_max"`
    TempMin            []float64 `json:"temperature_2m_min"`
    HumidityMax        []float64 `json:"relative_humidity_2m_max"`
    HumidityMin        []float64 `json:"relative_humidity_2m_min"`
    PressureMSLMean    []float64 `json:"pressure_msl_mean"`
}

type forecastResponse struct {
    Latitude  float64    `json:"latitude"`
    Longitude float64    `json:"longitude"`
    Timezone  string     `json:"timezone"`
    Daily     dailyBlock `json:"daily"`
}

func main() {
    // Chennai, the service's default location.
    url := "https://api.open-meteo.com/v1/forecast?latitude=13.0895&longitude=80.2739" +
        "&daily=temperature_2m_max,temperature_2m_min,relative_humidity_2m_max,relative_humidity_2m_min,pressure_msl_mean" +
        "&timezone=auto&forecast_days=7"
    fmt.Println("Requesting forecast:", url)

    resp, err := http.Get(url)
    if err != nil {
        panic(err)
    }
    defer resp.Body.Close()

    body, err := io.ReadAll(resp.Body)
    if err != nil {
        panic(err)
    }

    if resp.StatusCode != http.StatusOK {
        fmt.Printf("Request failed: %s\n%s\n", resp.Status, body)
        return
    }

    var parsed forecastResponse
    if err := json.Unmarshal(body, &parsed); err != nil {
        panic(fmt.Sprintf("Error parsing API response: %v", err))
    }

    fmt.Printf("Location: %.4f,%.4f (%s), %d days\n",
        parsed.Latitude, parsed.Longitude, parsed.Timezone, len(parsed.Daily.Time))

    for i, date := range parsed.Daily.Time {
        if i >= len(parsed.Daily.TempMax) || i >= len(parsed.Daily.TempMin) {
            fmt.Printf("%s: temperature arrays shorter than time array\n", date)
            break
        }
        temp := (parsed.Daily.TempMax[i] + parsed.Daily.TempMin[i]) / 2
        humidity := 0.0
        if i < len(parsed.Daily.HumidityMax) && i < len(parsed.Daily.HumidityMin) {
            humidity = (parsed.Daily.HumidityMax[i] + parsed.Daily.HumidityMin[i]) / 2
        }
        pressure := 1013.0
        if i < len(parsed.Daily.PressureMSLMean) {
            pressure = parsed.Daily.PressureMSLMean[i]
        }
        fmt.Printf("%s: temp %.1fC humidity %.0f%% pressure %.1fhPa\n", date, temp, humidity, pressure)
    }
}

// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 The statdeck authors

package export

import (
	"strings"

	"github.com/statdeck/statdeck/pkg/settings"
)

// renderIndex fills the unit strings into the status page. The page itself
// is static; all live data arrives through the /metrics poll.
func renderIndex(units string) string {
	deg, wind := "°F", "mph"
	if units == settings.UnitsMetric {
		deg, wind = "°C", "m/s"
	}
	page := strings.ReplaceAll(indexHTML, "__DEG__", deg)
	return strings.ReplaceAll(page, "__WIND__", wind)
}

const indexHTML = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8" />
  <title>statdeck</title>
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <style>
    body { font-family: system-ui, sans-serif; background:#111; color:#eee; margin:0; }
    .wrap { max-width:960px; margin:0 auto; padding:1.5rem; }
    h1 { margin:0 0 0.4em 0; text-align:center; }
    .status-bar { text-align:center; margin-bottom:0.8rem; font-size:0.85rem; color:#888; }
    .grid { display:flex; flex-wrap:wrap; justify-content:center; gap:1rem; margin-top:1rem; }
    .card { background:#1c1c1c; padding:1rem 1.5rem; border-radius:0.8rem; min-width:140px; box-shadow:0 12px 28px rgba(0,0,0,0.35); }
    .label { font-size:0.8rem; text-transform:uppercase; color:#aaa; letter-spacing:0.08em; }
    .value { font-size:1.4rem; margin-top:0.2rem; }
    .weather-section { margin-top:2rem; background:#181818; border-radius:1rem; padding:1.25rem; box-shadow:0 22px 40px rgba(0,0,0,0.35); }
    .weather-header { display:flex; justify-content:space-between; align-items:center; flex-wrap:wrap; gap:0.5rem; }
    .weather-location { font-size:0.95rem; color:#aaa; }
    .weather-current { display:flex; justify-content:space-between; flex-wrap:wrap; gap:1.2rem; margin-top:1rem; }
    .current-temp { font-size:3rem; font-weight:600; }
    .current-desc { font-size:1.1rem; color:#ccc; }
    .current-meta { color:#aaa; margin-top:0.2rem; }
    .weather-extra { color:#888; font-size:0.9rem; align-self:flex-end; }
    .forecast-grid { display:flex; flex-wrap:wrap; gap:0.9rem; margin-top:1.2rem; }
    .forecast-card { flex:1 1 120px; background:#222; border-radius:0.8rem; padding:0.75rem; text-align:center; }
    .forecast-day { font-weight:600; margin-bottom:0.2rem; }
    .forecast-temp { font-size:1.2rem; }
    .forecast-desc { font-size:0.85rem; color:#bbb; margin-top:0.2rem; }
    @media (max-width:640px) {
      .weather-current { flex-direction:column; align-items:flex-start; }
      .card { min-width:125px; }
    }
  </style>
  <script>
    const DEG = '__DEG__';
    const WIND = '__WIND__';
    function formatTemp(value) {
      if (value === null || value === undefined || isNaN(value)) return '--';
      return Math.round(value) + DEG;
    }
    function formatPercent(value) {
      if (value === null || value === undefined || isNaN(value)) return '--';
      return Math.round(value) + '%';
    }
    function formatWind(value) {
      if (value === null || value === undefined || isNaN(value)) return '--';
      return Math.round(value) + ' ' + WIND;
    }
    function setText(id, text) {
      const el = document.getElementById(id);
      if (el) el.textContent = text;
    }
    function applyStats(data) {
      const keys = [
        ['cpu', 0], ['mem', 0], ['gpu', 0], ['diskPct', 0],
        ['diskMBps', 2], ['cpuTempF', 0], ['gpuTempF', 0],
        ['freeC', 0], ['freeD', 0]
      ];
      keys.forEach(([key, decimals]) => {
        const el = document.getElementById(key);
        if (!el) return;
        const val = data[key];
        el.textContent = (val === null || val === undefined || isNaN(val))
          ? '-'
          : Number(val).toFixed(decimals);
      });
    }
    function applyWeather(weather, forecast) {
      if (!weather) return;
      setText('weatherLocation', weather.location || 'Weather');
      setText('weatherTemp', formatTemp(weather.temperature));
      setText('weatherDesc', weather.description || '--');
      const hiLo = formatTemp(weather.tempMax) + ' / ' + formatTemp(weather.tempMin);
      const feels = formatTemp(weather.feelsLike);
      const humidity = formatPercent(weather.humidity);
      const wind = formatWind(weather.windSpeed);
      setText('weatherMeta', 'High / Low ' + hiLo + ' • Feels ' + feels + ' • Hum ' + humidity + ' • Wind ' + wind);
      let updatedText = '--';
      if (weather.updated) {
        const offset = weather.timezoneOffset || 0;
        const dt = new Date((weather.updated + offset) * 1000);
        updatedText = dt.toLocaleTimeString([], { hour: 'numeric', minute: '2-digit', timeZone: 'UTC' });
      }
      setText('weatherExtra', (weather.ok ? 'Updated' : 'Offline') + ' @ ' + updatedText);
      for (let i = 0; i < 3; i++) {
        const data = (Array.isArray(forecast) && forecast[i] && forecast[i].valid) ? forecast[i] : null;
        setText('forecast' + i + 'Day', data ? data.label : '--');
        setText('forecast' + i + 'Hi', formatTemp(data ? data.high : null));
        setText('forecast' + i + 'Lo', formatTemp(data ? data.low : null));
        setText('forecast' + i + 'Desc', data ? data.description : '--');
      }
    }
    async function refresh() {
      const statusEl = document.getElementById('dataStatus');
      try {
        const response = await fetch('/metrics');
        const json = await response.json();
        applyStats(json);
        applyWeather(json.weather, json.forecast);
        const ageMs = json.dataAgeMs;
        if (ageMs < 0) {
          statusEl.textContent = 'No telemetry received yet (uptime: ' + Math.floor(json.uptimeMs / 1000) + 's)';
          statusEl.style.color = '#f44';
        } else if (ageMs > 10000) {
          statusEl.textContent = 'Telemetry stale: ' + Math.floor(ageMs / 1000) + 's ago';
          statusEl.style.color = '#fa0';
        } else {
          statusEl.textContent = 'Telemetry: ' + (ageMs < 1000 ? 'live' : Math.floor(ageMs / 1000) + 's ago');
          statusEl.style.color = '#0f0';
        }
      } catch (err) {
        statusEl.textContent = 'Fetch error: ' + err.message;
        statusEl.style.color = '#f44';
      }
    }
    setInterval(refresh, 2000);
    window.onload = refresh;
  </script>
</head>
<body>
  <main class="wrap">
    <h1>statdeck</h1>
    <div class="status-bar"><span id="dataStatus">Waiting for data...</span></div>
    <div class="grid">
      <div class="card"><div class="label">CPU %</div><div id="cpu" class="value">-</div></div>
      <div class="card"><div class="label">MEM %</div><div id="mem" class="value">-</div></div>
      <div class="card"><div class="label">GPU %</div><div id="gpu" class="value">-</div></div>
      <div class="card"><div class="label">Disk %</div><div id="diskPct" class="value">-</div></div>
      <div class="card"><div class="label">Disk MB/s</div><div id="diskMBps" class="value">-</div></div>
      <div class="card"><div class="label">CPU &deg;F</div><div id="cpuTempF" class="value">-</div></div>
      <div class="card"><div class="label">GPU &deg;F</div><div id="gpuTempF" class="value">-</div></div>
      <div class="card"><div class="label">Free C (GB)</div><div id="freeC" class="value">-</div></div>
      <div class="card"><div class="label">Free D (GB)</div><div id="freeD" class="value">-</div></div>
    </div>
    <section class="weather-section">
      <div class="weather-header">
        <h2>Weather</h2>
        <div class="weather-location" id="weatherLocation">Fetching...</div>
      </div>
      <div class="weather-current">
        <div>
          <div class="current-temp" id="weatherTemp">--</div>
          <div class="current-desc" id="weatherDesc">--</div>
          <div class="current-meta" id="weatherMeta">--</div>
        </div>
        <div class="weather-extra" id="weatherExtra">Waiting for data...</div>
      </div>
      <div class="forecast-grid">
        <div class="forecast-card">
          <div class="forecast-day" id="forecast0Day">--</div>
          <div class="forecast-temp"><span id="forecast0Hi">--</span> / <span id="forecast0Lo">--</span></div>
          <div class="forecast-desc" id="forecast0Desc">--</div>
        </div>
        <div class="forecast-card">
          <div class="forecast-day" id="forecast1Day">--</div>
          <div class="forecast-temp"><span id="forecast1Hi">--</span> / <span id="forecast1Lo">--</span></div>
          <div class="forecast-desc" id="forecast1Desc">--</div>
        </div>
        <div class="forecast-card">
          <div class="forecast-day" id="forecast2Day">--</div>
          <div class="forecast-temp"><span id="forecast2Hi">--</span> / <span id="forecast2Lo">--</span></div>
          <div class="forecast-desc" id="forecast2Desc">--</div>
        </div>
      </div>
    </section>
  </main>
</body>
</html>
`

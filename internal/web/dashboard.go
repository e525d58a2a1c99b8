package web

import "net/http"

func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	html := `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Hot Corners</title>
    <script src="https://unpkg.com/htmx.org@1.9.10"></script>
    <style>
        * {
            margin: 0;
            padding: 0;
            box-sizing: border-box;
        }

        :root {
            --bg-primary: #f5f5f5;
            --bg-secondary: white;
            --text-primary: #333;
            --text-secondary: #1a1a1a;
            --text-muted: #7f8c8d;
            --border-color: #eee;
            --border-strong: #ecf0f1;
            --accent-color: #3498db;
            --heading-color: #2c3e50;
            --ok-color: #27ae60;
            --warn-color: #e67e22;
            --shadow: rgba(0,0,0,0.1);
        }

        [data-theme="dark"] {
            --bg-primary: #1a1a1a;
            --bg-secondary: #2d2d2d;
            --text-primary: #e0e0e0;
            --text-secondary: #ffffff;
            --text-muted: #a0a0a0;
            --border-color: #404040;
            --border-strong: #4a4a4a;
            --accent-color: #5dade2;
            --heading-color: #5dade2;
            --ok-color: #2ecc71;
            --warn-color: #f39c12;
            --shadow: rgba(0,0,0,0.3);
        }

        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif;
            background: var(--bg-primary);
            padding: 20px;
            color: var(--text-primary);
            transition: background-color 0.3s ease, color 0.3s ease;
        }

        .header {
            display: flex;
            justify-content: space-between;
            align-items: center;
            margin-bottom: 30px;
        }

        h1 {
            color: var(--text-secondary);
            font-size: 2rem;
            margin: 0;
        }

        .header-controls {
            display: flex;
            gap: 10px;
        }

        .header-btn {
            background: var(--bg-secondary);
            border: 2px solid var(--border-color);
            border-radius: 50px;
            padding: 8px 16px;
            cursor: pointer;
            font-size: 1rem;
            color: var(--text-primary);
            transition: all 0.3s ease;
            display: flex;
            align-items: center;
            gap: 8px;
        }

        .header-btn:hover {
            border-color: var(--accent-color);
            transform: scale(1.05);
        }

        .dashboard {
            display: flex;
            gap: 20px;
            flex-wrap: wrap;
        }

        .report-box {
            flex: 1;
            min-width: 300px;
            background: var(--bg-secondary);
            border-radius: 8px;
            box-shadow: 0 2px 4px var(--shadow);
            padding: 24px;
            transition: background-color 0.3s ease, box-shadow 0.3s ease;
        }

        .report-box h2 {
            font-size: 1.5rem;
            margin-bottom: 20px;
            color: var(--heading-color);
            border-bottom: 2px solid var(--accent-color);
            padding-bottom: 10px;
        }

        .status-line {
            display: flex;
            gap: 10px;
            margin-bottom: 12px;
        }

        .state {
            padding: 4px 12px;
            border-radius: 50px;
            font-weight: 600;
            font-size: 0.9rem;
            color: white;
        }

        .state-active { background: var(--ok-color); }
        .state-stopped { background: var(--text-muted); }
        .state-warn { background: var(--warn-color); }

        .status-detail {
            color: var(--text-muted);
            font-size: 0.95rem;
            padding: 2px 0;
        }

        .display-frame {
            position: relative;
            aspect-ratio: 16 / 9;
            border: 3px solid var(--border-strong);
            border-radius: 10px;
            background: var(--bg-primary);
        }

        .corner {
            position: absolute;
            max-width: 45%;
            padding: 8px 12px;
            border-radius: 6px;
            font-size: 0.85rem;
            font-weight: 500;
            overflow: hidden;
            text-overflow: ellipsis;
            white-space: nowrap;
        }

        .corner.bound {
            background: var(--accent-color);
            color: white;
        }

        .corner.empty {
            border: 1px dashed var(--text-muted);
            color: var(--text-muted);
        }

        .corner.top-left { top: 8px; left: 8px; }
        .corner.top-right { top: 8px; right: 8px; }
        .corner.bottom-left { bottom: 8px; left: 8px; }
        .corner.bottom-right { bottom: 8px; right: 8px; }

        .app-item {
            display: flex;
            justify-content: space-between;
            align-items: center;
            padding: 12px 8px;
            border-bottom: 1px solid var(--border-color);
            position: relative;
            border-radius: 4px;
        }

        .app-item::before {
            content: '';
            position: absolute;
            left: 0;
            top: 0;
            height: 100%;
            width: var(--bar-width, 0%);
            background: var(--accent-color);
            opacity: 0.2;
            border-radius: 4px;
            z-index: 0;
        }

        .app-item > * {
            position: relative;
            z-index: 1;
        }

        .app-item:last-child {
            border-bottom: none;
        }

        .app-name {
            font-weight: 500;
            color: var(--text-primary);
        }

        .app-time {
            color: var(--text-muted);
            font-size: 0.9rem;
        }

        .app-percentage {
            color: var(--accent-color);
            font-weight: 600;
            margin-left: 10px;
            display: inline-block;
            min-width: 5em;
            text-align: right;
        }

        .loading {
            color: var(--text-muted);
            font-style: italic;
        }

        .total {
            margin-top: 20px;
            padding-top: 15px;
            border-top: 2px solid var(--border-strong);
            font-weight: 600;
            font-size: 1.1rem;
            color: var(--heading-color);
        }

        .listing {
            overflow-y: auto;
            max-height: calc(100vh - 320px);
        }

        @media (max-width: 1024px) {
            .dashboard {
                flex-direction: column;
            }

            .report-box {
                min-width: 100%;
            }
        }
    </style>
</head>
<body>
    <div class="header">
        <h1>Hot Corners</h1>
        <div class="header-controls">
            <button class="header-btn" onclick="setMonitoring(true)" title="Start monitoring">&#9654; Start</button>
            <button class="header-btn" onclick="setMonitoring(false)" title="Stop monitoring">&#9632; Stop</button>
            <button class="header-btn" onclick="toggleTheme()" title="Toggle theme">
                <span id="theme-icon">&#127769;</span>
            </button>
        </div>
    </div>
    <div class="dashboard">
        <div class="report-box">
            <h2>Status</h2>
            <div id="status-box" hx-get="/api/status" hx-trigger="load, every 2s, refresh" hx-swap="innerHTML">
                <div class="loading">Loading...</div>
            </div>
        </div>

        <div class="report-box">
            <h2>Corners</h2>
            <div hx-get="/api/corners" hx-trigger="load, every 5s" hx-swap="innerHTML">
                <div class="loading">Loading...</div>
            </div>
        </div>

        <div class="report-box">
            <h2>Today</h2>
            <div hx-get="/api/summary?period=today" hx-trigger="load, every 30s" hx-swap="innerHTML">
                <div class="loading">Loading...</div>
            </div>
        </div>

        <div class="report-box">
            <h2>This Week</h2>
            <div hx-get="/api/summary?period=week" hx-trigger="load, every 30s" hx-swap="innerHTML">
                <div class="loading">Loading...</div>
            </div>
        </div>
    </div>
    <script>
        function initTheme() {
            const savedTheme = localStorage.getItem('theme');
            const prefersDark = window.matchMedia('(prefers-color-scheme: dark)').matches;
            const theme = savedTheme || (prefersDark ? 'dark' : 'light');
            setTheme(theme);
        }

        function setTheme(theme) {
            document.documentElement.setAttribute('data-theme', theme);
            document.getElementById('theme-icon').innerHTML = theme === 'dark' ? '&#9728;' : '&#127769;';
            localStorage.setItem('theme', theme);
        }

        function toggleTheme() {
            const currentTheme = document.documentElement.getAttribute('data-theme');
            setTheme(currentTheme === 'dark' ? 'light' : 'dark');
        }

        async function setMonitoring(on) {
            await fetch('/api/monitoring/' + (on ? 'start' : 'stop'), { method: 'POST' });
            htmx.trigger('#status-box', 'refresh');
        }

        initTheme();
    </script>
</body>
</html>`

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(html))
}

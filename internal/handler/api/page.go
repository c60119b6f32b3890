package api

// dashboardHTML is a thin client: it renders the frames pushed on /ws and
// posts button clicks to /api/actions/:action.
const dashboardHTML = `<!DOCTYPE html>
<html lang="pt-BR">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>BTC &amp; VIX Dashboard</title>
    <style>
        * { box-sizing: border-box; }
        body { margin: 0; font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; background: #0f1419; color: #e6e6e6; }
        header { display: flex; justify-content: space-between; align-items: center; padding: 16px 24px; border-bottom: 1px solid #2a2f36; }
        header h1 { font-size: 20px; margin: 0; }
        #current-date { color: #9aa4ad; font-size: 14px; }
        main { max-width: 1100px; margin: 0 auto; padding: 24px; }
        .actions { display: flex; gap: 12px; margin-bottom: 20px; }
        button { background: #1f6feb; color: #fff; border: 0; border-radius: 6px; padding: 10px 16px; font-size: 14px; cursor: pointer; }
        button.secondary { background: #30363d; }
        button:disabled { opacity: .5; cursor: wait; }
        #error-container { display: none; background: #3d1418; border: 1px solid #f85149; color: #ffa198; padding: 12px 16px; border-radius: 6px; margin-bottom: 20px; }
        #market-data { display: none; grid-template-columns: repeat(auto-fill, minmax(240px, 1fr)); gap: 16px; }
        .card { background: #161b22; border: 1px solid #2a2f36; border-radius: 8px; padding: 16px; }
        .card h3 { margin: 0 0 8px; font-size: 13px; color: #9aa4ad; font-weight: 500; text-transform: uppercase; }
        .card .value { font-size: 24px; font-weight: 600; }
        .card.positive { border-color: #3fb950; }
        .card.negative { border-color: #f85149; }
        .positive { color: #3fb950; }
        .negative { color: #f85149; }
        #last-updated { display: none; margin-top: 12px; color: #9aa4ad; font-size: 13px; }
        #prediction-result { display: none; margin-top: 24px; }
        .recommendation { font-size: 20px; font-weight: 600; }
        .recommendation.success { color: #3fb950; }
        .recommendation.danger { color: #f85149; }
        #loading-overlay { display: none; position: fixed; inset: 0; background: rgba(0,0,0,.55); align-items: center; justify-content: center; z-index: 10; }
        .spinner { width: 48px; height: 48px; border: 4px solid #30363d; border-top-color: #1f6feb; border-radius: 50%; animation: spin 1s linear infinite; }
        @keyframes spin { to { transform: rotate(360deg); } }
        #ws-status { font-size: 12px; color: #9aa4ad; }
    </style>
</head>
<body>
    <header>
        <h1>BTC &amp; VIX Dashboard</h1>
        <div>
            <div id="current-date"></div>
            <div id="ws-status">Connecting...</div>
        </div>
    </header>
    <main>
        <div class="actions">
            <button data-action="load" class="secondary">Reload data</button>
            <button data-action="refresh">Refresh cache</button>
            <button data-action="predict">Get prediction</button>
        </div>

        <div id="error-container"></div>

        <section id="market-data">
            <div class="card"><h3>BTC open</h3><div class="value" id="btcOpen">--</div></div>
            <div class="card"><h3>BTC close (MA3)</h3><div class="value" id="btcCloseMa3">--</div></div>
            <div class="card" id="card-btc-current">
                <h3>BTC current</h3>
                <div class="value" id="btcCurrent">--</div>
                <div id="btcVariation">--</div>
            </div>
            <div class="card"><h3>VIX open</h3><div class="value" id="vixOpen">--</div></div>
            <div class="card"><h3>VIX close (MA3)</h3><div class="value" id="vixCloseMa3">--</div></div>
            <div class="card"><h3>VIX current</h3><div class="value" id="vixCurrentPrice">--</div></div>
        </section>
        <div id="last-updated">Last updated: <span id="last-updated-value">--</span></div>

        <section id="prediction-result" class="card">
            <h3>Prediction for <span id="predictDate">--</span></h3>
            <div id="predictRecommendation" class="recommendation"></div>
        </section>
    </main>

    <div id="loading-overlay"><div class="spinner"></div></div>

    <script>
        const $ = (id) => document.getElementById(id);
        let lastNotice = null;
        let lastVersion = -1;

        function setTrend(el, trend) {
            const other = trend === 'positive' ? 'negative' : 'positive';
            el.classList.add(trend);
            el.classList.remove(other);
        }

        function render(s) {
            // Frames arrive from both the stream and action responses.
            if (s.version < lastVersion) {
                return;
            }
            lastVersion = s.version;

            $('current-date').textContent = s.current_date;

            $('btcOpen').textContent = s.btc_open;
            $('btcCloseMa3').textContent = s.btc_close_ma3;
            $('btcCurrent').textContent = s.btc_current;
            $('btcVariation').textContent = s.btc_variation;
            if (s.btc_trend) {
                setTrend($('btcVariation'), s.btc_trend);
                setTrend($('card-btc-current'), s.btc_trend);
            }
            $('vixOpen').textContent = s.vix_open;
            $('vixCloseMa3').textContent = s.vix_close_ma3;
            $('vixCurrentPrice').textContent = s.vix_current_price;
            $('market-data').style.display = s.market_visible ? 'grid' : 'none';

            $('last-updated-value').textContent = s.last_updated;
            $('last-updated').style.display = s.market_visible ? 'block' : 'none';

            $('predictDate').textContent = s.prediction_date;
            $('predictRecommendation').textContent = s.recommendation;
            $('predictRecommendation').className = s.recommendation_style || 'recommendation';
            $('prediction-result').style.display = s.prediction_visible ? 'block' : 'none';

            $('error-container').textContent = s.error;
            $('error-container').style.display = s.error_visible ? 'block' : 'none';
            $('loading-overlay').style.display = s.loading ? 'flex' : 'none';
            document.querySelectorAll('button[data-action]').forEach((b) => { b.disabled = s.loading; });

            // The first frame only records the counter; later increments are new notices.
            if (lastNotice !== null && s.notice_seq > lastNotice && s.notice) {
                alert(s.notice);
            }
            lastNotice = s.notice_seq;
        }

        async function runAction(action) {
            try {
                const res = await fetch('/api/actions/' + action, { method: 'POST', cache: 'no-cache' });
                const body = await res.json();
                if (res.status === 409) {
                    console.warn('dashboard busy, ignoring', action);
                    return;
                }
                if (body.data && body.data.state) {
                    render(body.data.state);
                }
            } catch (err) {
                console.error(err);
            }
        }

        function connect() {
            const proto = location.protocol === 'https:' ? 'wss://' : 'ws://';
            const ws = new WebSocket(proto + location.host + '/ws');
            ws.onopen = () => {
                lastVersion = -1;
                $('ws-status').textContent = 'Live';
            };
            ws.onclose = () => {
                $('ws-status').textContent = 'Reconnecting...';
                setTimeout(connect, 2000);
            };
            ws.onerror = () => ws.close();
            ws.onmessage = (e) => render(JSON.parse(e.data));
        }

        document.querySelectorAll('button[data-action]').forEach((b) => {
            b.addEventListener('click', () => runAction(b.dataset.action));
        });
        connect();
    </script>
</body>
</html>
`
